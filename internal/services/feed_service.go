package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// feedTitleLength caps item titles; the full text goes in the description
const feedTitleLength = 80

// FeedService publishes the active announcements as a syndication feed
type FeedService struct {
	store     database.Store
	siteTitle string
}

// NewFeedService creates a new FeedService
func NewFeedService(store database.Store, siteTitle string) *FeedService {
	return &FeedService{store: store, siteTitle: siteTitle}
}

// AnnouncementFeed lists active announcements in display order.
// baseURL is the absolute URL of the display page.
func (s *FeedService) AnnouncementFeed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	anns, err := s.store.ListActiveAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	feed := &feeds.Feed{
		Title:       s.siteTitle + " - Pengumuman",
		Link:        &feeds.Link{Href: baseURL + "/"},
		Description: "Informasi running text",
		Id:          baseURL + "/feed/announcements",
		Items:       make([]*feeds.Item, 0, len(anns)),
	}

	for _, a := range anns {
		created := models.ParseTimestamp(a.CreatedAt)
		if created.After(feed.Updated) {
			feed.Updated = created
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          baseURL + "/api/announcements/" + strconv.FormatInt(a.ID, 10),
			Title:       feedTitle(a.Text),
			Link:        &feeds.Link{Href: baseURL + "/"},
			Description: a.Text,
			Created:     created,
		})
	}

	if feed.Updated.IsZero() {
		feed.Updated = time.Now()
	}
	feed.Created = feed.Updated

	return feed, nil
}

func feedTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= feedTitleLength {
		return text
	}
	return string(runes[:feedTitleLength-3]) + "..."
}
