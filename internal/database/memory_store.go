package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skbsalatiga/signage-backend/internal/config"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// MemoryStore keeps all content in process memory. It is used when no
// DATABASE_URL is configured and has the same semantics as SQLStore.
type MemoryStore struct {
	mu sync.RWMutex

	staff         []models.StaffStatus
	announcements []models.Announcement
	videoConfigs  []models.VideoConfig
	playlist      []models.VideoPlaylistEntry
	users         []models.User

	nextStaffID        int64
	nextAnnouncementID int64
	nextVideoConfigID  int64
	nextPlaylistID     int64
	nextUserID         int64

	now func() time.Time
}

// NewMemoryStore creates an in-memory store loaded with seed (may be nil)
func NewMemoryStore(seed *config.SeedContent) *MemoryStore {
	s := &MemoryStore{
		nextStaffID:        1,
		nextAnnouncementID: 1,
		nextVideoConfigID:  1,
		nextPlaylistID:     1,
		nextUserID:         1,
		now:                time.Now,
	}
	if seed != nil {
		s.SeedIfEmpty(context.Background(), seed)
	}
	return s
}

// Kind implements Store
func (s *MemoryStore) Kind() string { return "memory" }

// Ping implements Store
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// Close implements Store
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) timestamp() string {
	return models.Timestamp(s.now())
}

// ListStaff returns staff in display order
func (s *MemoryStore) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.StaffStatus, len(s.staff))
	copy(out, s.staff)
	return out, nil
}

// ReplaceAllStaff swaps the whole collection; on a validation error nothing changes
func (s *MemoryStore) ReplaceAllStaff(ctx context.Context, list []models.StaffStatus) ([]models.StaffStatus, error) {
	if err := models.ValidateStaffList(list); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.staff = make([]models.StaffStatus, len(list))
	copy(s.staff, list)
	for _, st := range list {
		if st.ID >= s.nextStaffID {
			s.nextStaffID = st.ID + 1
		}
	}

	out := make([]models.StaffStatus, len(s.staff))
	copy(out, s.staff)
	return out, nil
}

// AddStaff appends a role at the end of the list
func (s *MemoryStore) AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addStaffLocked(req.Title, req.Available()), nil
}

func (s *MemoryStore) addStaffLocked(title string, available bool) *models.StaffStatus {
	st := models.StaffStatus{ID: s.nextStaffID, Title: title, IsAvailable: available}
	s.nextStaffID++
	s.staff = append(s.staff, st)
	return &st
}

// RemoveStaff deletes a role by id
func (s *MemoryStore) RemoveStaff(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.staff {
		if s.staff[i].ID == id {
			s.staff = append(s.staff[:i], s.staff[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// LatestAnnouncement returns the most recently created announcement, active or not
func (s *MemoryStore) LatestAnnouncement(ctx context.Context) (*models.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.Announcement
	for i := range s.announcements {
		a := &s.announcements[i]
		if latest == nil || newerThan(a.CreatedAt, a.ID, latest.CreatedAt, latest.ID) {
			latest = a
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

// ListActiveAnnouncements returns active announcements by priority, then id
func (s *MemoryStore) ListActiveAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.listAnnouncements(true), nil
}

// ListAllAnnouncements returns every announcement by priority, then id
func (s *MemoryStore) ListAllAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.listAnnouncements(false), nil
}

func (s *MemoryStore) listAnnouncements(activeOnly bool) []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return byPriority(out[i].Priority, out[i].ID, out[j].Priority, out[j].ID)
	})
	return out
}

// CreateAnnouncement stores a new announcement
func (s *MemoryStore) CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createAnnouncementLocked(req.Text, req.Active(), req.PriorityOrDefault()), nil
}

func (s *MemoryStore) createAnnouncementLocked(text string, active bool, priority int) *models.Announcement {
	a := models.Announcement{
		ID:        s.nextAnnouncementID,
		Text:      text,
		IsActive:  active,
		Priority:  priority,
		CreatedAt: s.timestamp(),
	}
	s.nextAnnouncementID++
	s.announcements = append(s.announcements, a)
	return &a
}

// PatchAnnouncement merges patch into an existing announcement
func (s *MemoryStore) PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.announcements {
		if s.announcements[i].ID == id {
			patch.Apply(&s.announcements[i])
			out := s.announcements[i]
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteAnnouncement removes an announcement by id
func (s *MemoryStore) DeleteAnnouncement(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.announcements {
		if s.announcements[i].ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// LatestVideoConfig returns the newest legacy video config
func (s *MemoryStore) LatestVideoConfig(ctx context.Context) (*models.VideoConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.VideoConfig
	for i := range s.videoConfigs {
		vc := &s.videoConfigs[i]
		if latest == nil || newerThan(vc.UpdatedAt, vc.ID, latest.UpdatedAt, latest.ID) {
			latest = vc
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	return &out, nil
}

// SetVideoConfig appends a new config; older ones stay as history
func (s *MemoryStore) SetVideoConfig(ctx context.Context, req models.SetVideoConfigRequest) (*models.VideoConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setVideoConfigLocked(req.VideoID, models.NullStringFrom(req.Title)), nil
}

func (s *MemoryStore) setVideoConfigLocked(videoID string, title models.NullString) *models.VideoConfig {
	vc := models.VideoConfig{
		ID:        s.nextVideoConfigID,
		VideoID:   videoID,
		Title:     title,
		UpdatedAt: s.timestamp(),
	}
	s.nextVideoConfigID++
	s.videoConfigs = append(s.videoConfigs, vc)
	return &vc
}

// PruneVideoConfigs drops all but the newest keep configs
func (s *MemoryStore) PruneVideoConfigs(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.videoConfigs) <= keep {
		return 0, nil
	}

	sorted := make([]models.VideoConfig, len(s.videoConfigs))
	copy(sorted, s.videoConfigs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newerThan(sorted[i].UpdatedAt, sorted[i].ID, sorted[j].UpdatedAt, sorted[j].ID)
	})

	removed := int64(len(sorted) - keep)
	s.videoConfigs = sorted[:keep]
	return removed, nil
}

// ListActiveVideoPlaylist returns active entries by priority, then id
func (s *MemoryStore) ListActiveVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error) {
	return s.listPlaylist(true), nil
}

// ListAllVideoPlaylist returns every entry by priority, then id
func (s *MemoryStore) ListAllVideoPlaylist(ctx context.Context) ([]models.VideoPlaylistEntry, error) {
	return s.listPlaylist(false), nil
}

func (s *MemoryStore) listPlaylist(activeOnly bool) []models.VideoPlaylistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.VideoPlaylistEntry, 0, len(s.playlist))
	for _, e := range s.playlist {
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return byPriority(out[i].Priority, out[i].ID, out[j].Priority, out[j].ID)
	})
	return out
}

// GetVideoPlaylistEntry returns an entry by id, active or not
func (s *MemoryStore) GetVideoPlaylistEntry(ctx context.Context, id int64) (*models.VideoPlaylistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.playlist {
		if e.ID == id {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

// AddVideoPlaylistEntry stores a new playlist entry
func (s *MemoryStore) AddVideoPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := models.VideoPlaylistEntry{
		ID:        s.nextPlaylistID,
		VideoID:   req.VideoID,
		Title:     models.NullStringFrom(req.Title),
		IsActive:  req.Active(),
		Priority:  req.PriorityOrDefault(),
		UpdatedAt: s.timestamp(),
	}
	s.nextPlaylistID++
	s.playlist = append(s.playlist, e)
	return &e, nil
}

// PatchVideoPlaylistEntry merges patch into an existing entry
func (s *MemoryStore) PatchVideoPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlist {
		if s.playlist[i].ID == id {
			patch.Apply(&s.playlist[i])
			s.playlist[i].UpdatedAt = s.timestamp()
			out := s.playlist[i]
			return &out, nil
		}
	}
	return nil, nil
}

// DeleteVideoPlaylistEntry removes an entry by id
func (s *MemoryStore) DeleteVideoPlaylistEntry(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.playlist {
		if s.playlist[i].ID == id {
			s.playlist = append(s.playlist[:i], s.playlist[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// GetUser returns a user by id
func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// GetUserByUsername returns a user by exact username
func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

// CreateUser stores a user; the password must already be hashed
func (s *MemoryStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrDuplicateUsername
		}
	}

	u := models.User{ID: s.nextUserID, Username: username, Password: passwordHash}
	s.nextUserID++
	s.users = append(s.users, u)
	return &u, nil
}

// SeedIfEmpty loads seed when no content exists yet
func (s *MemoryStore) SeedIfEmpty(ctx context.Context, seed *config.SeedContent) (bool, error) {
	if seed == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.staff) > 0 || len(s.announcements) > 0 || len(s.videoConfigs) > 0 || len(s.playlist) > 0 {
		return false, nil
	}

	for _, st := range seed.Staff {
		s.addStaffLocked(st.Title, st.IsAvailable)
	}
	for _, a := range seed.Announcements {
		s.createAnnouncementLocked(a.Text, a.IsActive, a.Priority)
	}
	if seed.VideoConfig != nil {
		s.setVideoConfigLocked(seed.VideoConfig.VideoID, models.NewNullString(seed.VideoConfig.Title))
	}
	return true, nil
}

// byPriority orders by ascending priority with id as tie-break
func byPriority(pi int, idi int64, pj int, idj int64) bool {
	if pi != pj {
		return pi < pj
	}
	return idi < idj
}

// newerThan compares (timestamp, id) pairs, newest first
func newerThan(tsA string, idA int64, tsB string, idB int64) bool {
	a, b := models.ParseTimestamp(tsA), models.ParseTimestamp(tsB)
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}
