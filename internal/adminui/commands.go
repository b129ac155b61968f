package adminui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// bannerTimeout is how long a success or error banner stays visible
const bannerTimeout = 3 * time.Second

const requestTimeout = 10 * time.Second

// API is the part of the signage client the admin console uses
type API interface {
	ListStaff(ctx context.Context) ([]models.StaffStatus, error)
	ReplaceStaff(ctx context.Context, staff []models.StaffStatus) ([]models.StaffStatus, error)
	AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error)
	RemoveStaff(ctx context.Context, id int64) error
	ListAnnouncements(ctx context.Context, all bool) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error)
	PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
	ListPlaylist(ctx context.Context, all bool) ([]models.VideoPlaylistEntry, error)
	AddPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error)
	PatchPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error)
	DeletePlaylistEntry(ctx context.Context, id int64) error
}

// Message types
type staffLoadedMsg struct {
	staff []models.StaffStatus
	err   error

	// keepToggles merges unsaved local availability into the fetched list
	keepToggles bool
}

type announcementsLoadedMsg struct {
	announcements []models.Announcement
	err           error
}

type playlistLoadedMsg struct {
	entries []models.VideoPlaylistEntry
	err     error
}

// mutationResultMsg reports a finished write; the tab's list is refetched afterwards
type mutationResultMsg struct {
	tab     Tab
	status  string
	err     error
	saveAll bool
}

// clearBannerMsg clears the banner only if no newer one replaced it
type clearBannerMsg struct {
	id int
}

// Commands
func clearBannerAfter(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return clearBannerMsg{id: id}
	})
}

func loadStaff(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		staff, err := api.ListStaff(ctx)
		return staffLoadedMsg{staff: staff, err: err}
	}
}

// refetchStaff reloads staff after a write without dropping pending toggles
func refetchStaff(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		staff, err := api.ListStaff(ctx)
		return staffLoadedMsg{staff: staff, err: err, keepToggles: true}
	}
}

func loadAnnouncements(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		anns, err := api.ListAnnouncements(ctx, true)
		return announcementsLoadedMsg{announcements: anns, err: err}
	}
}

func loadPlaylist(api API) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		entries, err := api.ListPlaylist(ctx, true)
		return playlistLoadedMsg{entries: entries, err: err}
	}
}

// mutate runs fn and reports the outcome for tab
func mutate(tab Tab, status string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return mutationResultMsg{tab: tab, status: status, err: fn(ctx)}
	}
}

func saveStaff(api API, staff []models.StaffStatus) tea.Cmd {
	list := append([]models.StaffStatus(nil), staff...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := api.ReplaceStaff(ctx, list)
		return mutationResultMsg{tab: TabStaff, status: "Status pejabat disimpan", err: err, saveAll: true}
	}
}

func addStaff(api API, title string) tea.Cmd {
	return mutate(TabStaff, "Pejabat ditambahkan", func(ctx context.Context) error {
		_, err := api.AddStaff(ctx, models.AddStaffRequest{Title: title})
		return err
	})
}

func removeStaff(api API, id int64) tea.Cmd {
	return mutate(TabStaff, "Pejabat dihapus", func(ctx context.Context) error {
		return api.RemoveStaff(ctx, id)
	})
}

func createAnnouncement(api API, text string) tea.Cmd {
	return mutate(TabAnnouncements, "Pengumuman ditambahkan", func(ctx context.Context) error {
		_, err := api.CreateAnnouncement(ctx, models.CreateAnnouncementRequest{Text: text})
		return err
	})
}

func patchAnnouncement(api API, id int64, patch models.AnnouncementPatch, status string) tea.Cmd {
	return mutate(TabAnnouncements, status, func(ctx context.Context) error {
		_, err := api.PatchAnnouncement(ctx, id, patch)
		return err
	})
}

func deleteAnnouncement(api API, id int64) tea.Cmd {
	return mutate(TabAnnouncements, "Pengumuman dihapus", func(ctx context.Context) error {
		return api.DeleteAnnouncement(ctx, id)
	})
}

func addPlaylistEntry(api API, videoID string) tea.Cmd {
	return mutate(TabPlaylist, "Video ditambahkan", func(ctx context.Context) error {
		_, err := api.AddPlaylistEntry(ctx, models.AddVideoRequest{VideoID: videoID})
		return err
	})
}

func patchPlaylistEntry(api API, id int64, patch models.VideoPatch, status string) tea.Cmd {
	return mutate(TabPlaylist, status, func(ctx context.Context) error {
		_, err := api.PatchPlaylistEntry(ctx, id, patch)
		return err
	})
}

func deletePlaylistEntry(api API, id int64) tea.Cmd {
	return mutate(TabPlaylist, "Video dihapus", func(ctx context.Context) error {
		return api.DeletePlaylistEntry(ctx, id)
	})
}
