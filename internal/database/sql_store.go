package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

const (
	staffColumns        = `id, title, is_available`
	announcementColumns = `id, text, is_active, priority, created_at`
	videoConfigColumns  = `id, video_id, title, updated_at`
	playlistColumns     = `id, video_id, title, is_active, priority, updated_at`
	userColumns         = `id, username, password`
)

// SQLStore implements Store on PostgreSQL or SQLite through sqlx.
// Queries are written with ? placeholders and rebound for the driver.
type SQLStore struct {
	db      DB
	dialect string
	now     func() time.Time
}

// NewSQLStore creates a store over an open, migrated connection
func NewSQLStore(db DB) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialectFor(db.DriverName()),
		now:     time.Now,
	}
}

// Kind implements Store
func (s *SQLStore) Kind() string { return s.dialect }

// Ping implements Store
func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close implements Store
func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) q(query string) string {
	return s.db.Rebind(query)
}

func (s *SQLStore) millis() int64 {
	return s.now().UnixMilli()
}

// withTx runs fn in a transaction, rolling back on error
func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertID runs an INSERT ... RETURNING id
func insertID(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (int64, error) {
	var id int64
	if err := sqlx.GetContext(ctx, q, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

// ListStaff returns staff in display order
func (s *SQLStore) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	staff := []models.StaffStatus{}
	query := s.q(`SELECT ` + staffColumns + ` FROM staff_status ORDER BY position, id`)
	if err := s.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// ReplaceAllStaff clears the table and reinserts list with its ids in one transaction
func (s *SQLStore) ReplaceAllStaff(ctx context.Context, list []models.StaffStatus) ([]models.StaffStatus, error) {
	if err := models.ValidateStaffList(list); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM staff_status`); err != nil {
			return fmt.Errorf("failed to clear staff: %w", err)
		}

		insert := s.q(`INSERT INTO staff_status (id, title, is_available, position) VALUES (?, ?, ?, ?)`)
		for i, st := range list {
			if _, err := tx.ExecContext(ctx, insert, st.ID, st.Title, st.IsAvailable, i); err != nil {
				return fmt.Errorf("failed to insert staff %d: %w", st.ID, err)
			}
		}

		if s.dialect == dialectPostgres {
			// Explicit ids bypass the serial sequence
			if _, err := tx.ExecContext(ctx,
				`SELECT setval(pg_get_serial_sequence('staff_status', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM staff_status`); err != nil {
				return fmt.Errorf("failed to reset staff sequence: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ListStaff(ctx)
}

// AddStaff appends a role at the end of the list
func (s *SQLStore) AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st := &models.StaffStatus{Title: req.Title, IsAvailable: req.Available()}
	id, err := insertID(ctx, s.db, s.q(`
		INSERT INTO staff_status (title, is_available, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM staff_status))
		RETURNING id`), st.Title, st.IsAvailable)
	if err != nil {
		return nil, fmt.Errorf("failed to add staff: %w", err)
	}
	st.ID = id
	return st, nil
}

// RemoveStaff deletes a role by id
func (s *SQLStore) RemoveStaff(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "staff_status", id)
}

func (s *SQLStore) deleteByID(ctx context.Context, table string, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, s.q(`DELETE FROM `+table+` WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows > 0, nil
}

// LatestAnnouncement returns the most recently created announcement, active or not
func (s *SQLStore) LatestAnnouncement(ctx context.Context) (*models.Announcement, error) {
	var a models.Announcement
	query := s.q(`SELECT ` + announcementColumns + ` FROM announcements ORDER BY created_at DESC, id DESC LIMIT 1`)
	err := s.db.GetContext(ctx, &a, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest announcement: %w", err)
	}
	return &a, nil
}

// ListActiveAnnouncements returns active announcements by priority, then id
func (s *SQLStore) ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	anns := []models.Announcement{}
	query := s.q(`SELECT ` + announcementColumns + ` FROM announcements WHERE is_active ORDER BY priority, id`)
	if err := s.db.SelectContext(ctx, &anns, query); err != nil {
		return nil, fmt.Errorf("failed to list active announcements: %w", err)
	}
	return anns, nil
}

// ListAllAnnouncements returns every announcement by priority, then id
func (s *SQLStore) ListAllAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	anns := []models.Announcement{}
	query := s.q(`SELECT ` + announcementColumns + ` FROM announcements ORDER BY priority, id`)
	if err := s.db.SelectContext(ctx, &anns, query); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return anns, nil
}

// CreateAnnouncement stores a new announcement
func (s *SQLStore) CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.createAnnouncement(ctx, s.db, req.Text, req.Active(), req.PriorityOrDefault())
}

func (s *SQLStore) createAnnouncement(ctx context.Context, q sqlx.QueryerContext, text string, active bool, priority int) (*models.Announcement, error) {
	created := s.millis()
	id, err := insertID(ctx, q, s.q(`
		INSERT INTO announcements (text, is_active, priority, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`), text, active, priority, created)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	return &models.Announcement{
		ID:        id,
		Text:      text,
		IsActive:  active,
		Priority:  priority,
		CreatedAt: fmt.Sprint(created),
	}, nil
}

// PatchAnnouncement merges patch into an existing announcement
func (s *SQLStore) PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var out *models.Announcement
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var a models.Announcement
		err := tx.GetContext(ctx, &a, s.q(`SELECT `+announcementColumns+` FROM announcements WHERE id = ?`), id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to get announcement: %w", err)
		}

		patch.Apply(&a)
		_, err = tx.ExecContext(ctx, s.q(`UPDATE announcements SET text = ?, is_active = ?, priority = ? WHERE id = ?`),
			a.Text, a.IsActive, a.Priority, a.ID)
		if err != nil {
			return fmt.Errorf("failed to update announcement: %w", err)
		}
		out = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAnnouncement removes an announcement by id
func (s *SQLStore) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "announcements", id)
}

// LatestVideoConfig returns the newest legacy video config
func (s *SQLStore) LatestVideoConfig(ctx context.Context) (*models.VideoConfig, error) {
	var vc models.VideoConfig
	query := s.q(`SELECT ` + videoConfigColumns + ` FROM video_config ORDER BY updated_at DESC, id DESC LIMIT 1`)
	err := s.db.GetContext(ctx, &vc, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video config: %w", err)
	}
	return &vc, nil
}

// SetVideoConfig appends a new config; older ones stay as history
func (s *SQLStore) SetVideoConfig(ctx context.Context, req models.SetVideoConfigRequest) (*models.VideoConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.setVideoConfig(ctx, s.db, req.VideoID, models.NullStringFrom(req.Title))
}

func (s *SQLStore) setVideoConfig(ctx context.Context, q sqlx.QueryerContext, videoID string, title models.NullString) (*models.VideoConfig, error) {
	updated := s.millis()
	id, err := insertID(ctx, q, s.q(`
		INSERT INTO video_config (video_id, title, updated_at)
		VALUES (?, ?, ?)
		RETURNING id`), videoID, title, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to set video config: %w", err)
	}

	return &models.VideoConfig{
		ID:        id,
		VideoID:   videoID,
		Title:     title,
		UpdatedAt: fmt.Sprint(updated),
	}, nil
}

// PruneVideoConfigs drops all but the newest keep configs
func (s *SQLStore) PruneVideoConfigs(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	result, err := s.db.ExecContext(ctx, s.q(`
		DELETE FROM video_config
		WHERE id NOT IN (
			SELECT id FROM video_config ORDER BY updated_at DESC, id DESC LIMIT ?
		)`), keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune video configs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// ListActiveVideoPlaylist returns active entries by priority, then id
func (s *SQLStore) ListActiveVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error) {
	entries := []models.VideoPlaylistEntry{}
	query := s.q(`SELECT ` + playlistColumns + ` FROM video_playlist WHERE is_active ORDER BY priority, id`)
	if err := s.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list active playlist: %w", err)
	}
	return entries, nil
}

// ListAllVideoPlaylist returns every entry by priority, then id
func (s *SQLStore) ListAllVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error) {
	entries := []models.VideoPlaylistEntry{}
	query := s.q(`SELECT ` + playlistColumns + ` FROM video_playlist ORDER BY priority, id`)
	if err := s.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list playlist: %w", err)
	}
	return entries, nil
}

// GetVideoPlaylistEntry returns an entry by id, active or not
func (s *SQLStore) GetVideoPlaylistEntry(ctx context.Context, id int64) (*models.VideoPlaylistEntry, error) {
	return s.getPlaylistEntry(ctx, s.db, id)
}

func (s *SQLStore) getPlaylistEntry(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.VideoPlaylistEntry, error) {
	var e models.VideoPlaylistEntry
	err := sqlx.GetContext(ctx, q, &e, s.q(`SELECT `+playlistColumns+` FROM video_playlist WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get playlist entry: %w", err)
	}
	return &e, nil
}

// AddVideoPlaylistEntry stores a new playlist entry
func (s *SQLStore) AddVideoPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e := &models.VideoPlaylistEntry{
		VideoID:  req.VideoID,
		Title:    models.NullStringFrom(req.Title),
		IsActive: req.Active(),
		Priority: req.PriorityOrDefault(),
	}
	updated := s.millis()

	id, err := insertID(ctx, s.db, s.q(`
		INSERT INTO video_playlist (video_id, title, is_active, priority, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`), e.VideoID, e.Title, e.IsActive, e.Priority, updated)
	if err != nil {
		return nil, fmt.Errorf("failed to add playlist entry: %w", err)
	}

	e.ID = id
	e.UpdatedAt = fmt.Sprint(updated)
	return e, nil
}

// PatchVideoPlaylistEntry merges patch into an existing entry
func (s *SQLStore) PatchVideoPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var out *models.VideoPlaylistEntry
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		e, err := s.getPlaylistEntry(ctx, tx, id)
		if err != nil || e == nil {
			return err
		}

		patch.Apply(e)
		updated := s.millis()
		_, err = tx.ExecContext(ctx, s.q(`
			UPDATE video_playlist
			SET video_id = ?, title = ?, is_active = ?, priority = ?, updated_at = ?
			WHERE id = ?`), e.VideoID, e.Title, e.IsActive, e.Priority, updated, e.ID)
		if err != nil {
			return fmt.Errorf("failed to update playlist entry: %w", err)
		}
		e.UpdatedAt = fmt.Sprint(updated)
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteVideoPlaylistEntry removes an entry by id
func (s *SQLStore) DeleteVideoPlaylistEntry(ctx context.Context, id int64) (bool, error) {
	return s.deleteByID(ctx, "video_playlist", id)
}

// GetUser returns a user by id
func (s *SQLStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUserByUsername returns a user by exact username
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT `+userColumns+` FROM users WHERE username = ?`), username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &u, nil
}

// CreateUser stores a user; the password must already be hashed
func (s *SQLStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	id, err := insertID(ctx, s.db, s.q(`
		INSERT INTO users (username, password)
		VALUES (?, ?)
		RETURNING id`), username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &models.User{ID: id, Username: username, Password: passwordHash}, nil
}

// SeedIfEmpty loads seed when every content table is empty
func (s *SQLStore) SeedIfEmpty(ctx context.Context, seed *config.SeedContent) (bool, error) {
	if seed == nil {
		return false, nil
	}

	seeded := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var count int
		err := tx.GetContext(ctx, &count, `
			SELECT (SELECT COUNT(*) FROM staff_status)
			     + (SELECT COUNT(*) FROM announcements)
			     + (SELECT COUNT(*) FROM video_config)
			     + (SELECT COUNT(*) FROM video_playlist)`)
		if err != nil {
			return fmt.Errorf("failed to count content: %w", err)
		}
		if count > 0 {
			return nil
		}

		insertStaff := s.q(`INSERT INTO staff_status (title, is_available, position) VALUES (?, ?, ?)`)
		for i, st := range seed.Staff {
			if _, err := tx.ExecContext(ctx, insertStaff, st.Title, st.IsAvailable, i); err != nil {
				return fmt.Errorf("failed to seed staff: %w", err)
			}
		}
		for _, a := range seed.Announcements {
			if _, err := s.createAnnouncement(ctx, tx, a.Text, a.IsActive, a.Priority); err != nil {
				return err
			}
		}
		if seed.VideoConfig != nil {
			if _, err := s.setVideoConfig(ctx, tx, seed.VideoConfig.VideoID, models.NewNullString(seed.VideoConfig.Title)); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}
