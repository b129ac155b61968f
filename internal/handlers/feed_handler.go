package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skbsalatiga/signage-backend/internal/services"
)

// FeedHandler serves the announcement feeds
type FeedHandler struct {
	feeds  *services.FeedService
	logger *logrus.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *services.FeedService, logger *logrus.Logger) *FeedHandler {
	return &FeedHandler{feeds: feedService, logger: logger}
}

// RSS handles GET /feed/announcements.rss
func (h *FeedHandler) RSS(c *gin.Context) {
	feed, err := h.feeds.AnnouncementFeed(c.Request.Context(), baseURL(c))
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to build feed")
		return
	}

	body, err := feed.ToRss()
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to build feed")
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(body))
}

// Atom handles GET /feed/announcements.atom
func (h *FeedHandler) Atom(c *gin.Context) {
	feed, err := h.feeds.AnnouncementFeed(c.Request.Context(), baseURL(c))
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to build feed")
		return
	}

	body, err := feed.ToAtom()
	if err != nil {
		respondError(c, h.logger, err, "", "Failed to build feed")
		return
	}
	c.Data(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(body))
}

// baseURL is the scheme and host the request was made to
func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
