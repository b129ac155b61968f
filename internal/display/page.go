package display

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

const (
	labelAvailable   = "ADA"
	labelUnavailable = "TIDAK ADA"
)

// StaffRow is one line of the staff panel
type StaffRow struct {
	Title     string
	Available bool
	Label     string
}

// PageOptions are the display settings that do not change per request
type PageOptions struct {
	SiteTitle        string
	RefreshInterval  time.Duration
	RotationInterval time.Duration
	Location         *time.Location
}

// RotationParams carry the video position between page reloads
type RotationParams struct {
	Index int
	Since time.Time
}

// ParseRotationParams reads the v and since query values; bad input is ignored
func ParseRotationParams(q url.Values) RotationParams {
	var p RotationParams
	if v, err := strconv.Atoi(q.Get("v")); err == nil {
		p.Index = v
	}
	if s, err := strconv.ParseInt(q.Get("since"), 10, 64); err == nil && s > 0 {
		p.Since = time.Unix(s, 0)
	}
	return p
}

// Page is the view model of the display page
type Page struct {
	SiteTitle      string
	Clock          string
	Date           string
	Staff          []StaffRow
	Ticker         Ticker
	TickerDuration string
	State          string
	Video          *Video
	Position       int
	Total          int
	RefreshSeconds int
	SelfURL        string
	NextURL        string
	PrevURL        string
}

// BuildPage runs the video state machine for one render
func BuildPage(snap *Snapshot, opts PageOptions, params RotationParams, now time.Time) *Page {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	panel := NewVideoPanel()
	panel.Resolve(snap.Playlist, snap.VideoConfig)
	panel.Seek(params.Index)
	since := Rotation{Interval: opts.RotationInterval}.Advance(panel, params.Since, now)

	page := &Page{
		SiteTitle:      opts.SiteTitle,
		Clock:          now.In(loc).Format("15:04"),
		Date:           now.In(loc).Format("02-01-2006"),
		Staff:          make([]StaffRow, 0, len(snap.Staff)),
		Ticker:         snap.Ticker,
		TickerDuration: fmt.Sprintf("%.0fs", snap.Ticker.DurationSeconds),
		State:          panel.State().String(),
		Video:          panel.Current(),
		Total:          panel.Len(),
		RefreshSeconds: int(opts.RefreshInterval / time.Second),
	}

	for _, s := range snap.Staff {
		row := StaffRow{Title: s.Title, Available: s.IsAvailable, Label: labelUnavailable}
		if s.IsAvailable {
			row.Label = labelAvailable
		}
		page.Staff = append(page.Staff, row)
	}

	if panel.State() == StateShowingPlaylist {
		page.Position = panel.Index() + 1
		page.SelfURL = rotationURL(panel.Index(), since)

		// Manual navigation restarts the timer
		next, prev := *panel, *panel
		next.Next()
		prev.Prev()
		page.NextURL = rotationURL(next.Index(), now)
		page.PrevURL = rotationURL(prev.Index(), now)
	} else {
		page.SelfURL = "/"
	}

	return page
}

func rotationURL(index int, since time.Time) string {
	q := url.Values{}
	q.Set("v", strconv.Itoa(index))
	q.Set("since", strconv.FormatInt(since.Unix(), 10))
	return "/?" + q.Encode()
}
