package adminui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI records writes and serves fixed lists
type fakeAPI struct {
	staff    []models.StaffStatus
	anns     []models.Announcement
	playlist []models.VideoPlaylistEntry

	replaced     []models.StaffStatus
	annPatches   map[int64]models.AnnouncementPatch
	videoPatches map[int64]models.VideoPatch
	deleted      []int64
	created      []string
	failWrites   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		staff: []models.StaffStatus{
			{ID: 1, Title: "KEPALA DINAS", IsAvailable: false},
			{ID: 2, Title: "SEKRETARIS", IsAvailable: true},
		},
		anns: []models.Announcement{
			{ID: 10, Text: "Pendaftaran dibuka", IsActive: true, Priority: 0},
			{ID: 11, Text: "Libur", IsActive: false, Priority: 2},
		},
		playlist: []models.VideoPlaylistEntry{
			{ID: 20, VideoID: "b6IVH_Xk1gE", IsActive: true, Priority: 1},
		},
		annPatches:   map[int64]models.AnnouncementPatch{},
		videoPatches: map[int64]models.VideoPatch{},
	}
}

func (f *fakeAPI) ListStaff(ctx context.Context) ([]models.StaffStatus, error) {
	return append([]models.StaffStatus(nil), f.staff...), nil
}

func (f *fakeAPI) ReplaceStaff(ctx context.Context, staff []models.StaffStatus) ([]models.StaffStatus, error) {
	if f.failWrites != nil {
		return nil, f.failWrites
	}
	f.replaced = staff
	f.staff = staff
	return staff, nil
}

func (f *fakeAPI) AddStaff(ctx context.Context, req models.AddStaffRequest) (*models.StaffStatus, error) {
	f.created = append(f.created, req.Title)
	created := models.StaffStatus{ID: 3, Title: req.Title}
	f.staff = append(f.staff, created)
	return &created, nil
}

func (f *fakeAPI) RemoveStaff(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.failWrites
}

func (f *fakeAPI) ListAnnouncements(ctx context.Context, all bool) ([]models.Announcement, error) {
	return f.anns, nil
}

func (f *fakeAPI) CreateAnnouncement(ctx context.Context, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	f.created = append(f.created, req.Text)
	return &models.Announcement{ID: 12, Text: req.Text}, nil
}

func (f *fakeAPI) PatchAnnouncement(ctx context.Context, id int64, patch models.AnnouncementPatch) (*models.Announcement, error) {
	f.annPatches[id] = patch
	return &models.Announcement{ID: id}, nil
}

func (f *fakeAPI) DeleteAnnouncement(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) ListPlaylist(ctx context.Context, all bool) ([]models.VideoPlaylistEntry, error) {
	return f.playlist, nil
}

func (f *fakeAPI) AddPlaylistEntry(ctx context.Context, req models.AddVideoRequest) (*models.VideoPlaylistEntry, error) {
	f.created = append(f.created, req.VideoID)
	return &models.VideoPlaylistEntry{ID: 21, VideoID: req.VideoID}, nil
}

func (f *fakeAPI) PatchPlaylistEntry(ctx context.Context, id int64, patch models.VideoPatch) (*models.VideoPlaylistEntry, error) {
	f.videoPatches[id] = patch
	return &models.VideoPlaylistEntry{ID: id}, nil
}

func (f *fakeAPI) DeletePlaylistEntry(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// update feeds msg to m and returns the concrete model
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a model with all three lists fetched
func loaded(t *testing.T, api *fakeAPI) Model {
	t.Helper()
	m := New(api)
	m, _ = update(t, m, loadStaff(api)())
	m, _ = update(t, m, loadAnnouncements(api)())
	m, _ = update(t, m, loadPlaylist(api)())
	return m
}

// runMutation executes the command a key produced and feeds the result back
func runMutation(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	result, ok := msg.(mutationResultMsg)
	require.True(t, ok, "expected mutationResultMsg, got %T", msg)
	return update(t, m, result)
}

func TestLoad(t *testing.T) {
	m := loaded(t, newFakeAPI())

	assert.Len(t, m.Staff, 2)
	assert.Len(t, m.Announcements, 2)
	assert.Len(t, m.Playlist, 1)
	assert.Contains(t, m.View(), "KEPALA DINAS")
}

func TestStaffToggleIsLocalUntilSave(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, cmd := update(t, m, key(" "))
	assert.Nil(t, cmd)
	assert.True(t, m.Staff[0].IsAvailable)
	assert.True(t, m.StaffDirty)
	assert.False(t, api.staff[0].IsAvailable, "toggle must not reach the server")
	assert.Contains(t, m.View(), "belum disimpan")

	m, cmd = update(t, m, key("s"))
	m, refetch := runMutation(t, m, cmd)
	require.Len(t, api.replaced, 2)
	assert.True(t, api.replaced[0].IsAvailable)
	assert.Equal(t, "Status pejabat disimpan", m.Status)
	require.NotNil(t, refetch)

	m, _ = update(t, m, loadStaff(api)())
	assert.False(t, m.StaffDirty)
	assert.True(t, m.Staff[0].IsAvailable)
}

func TestReloadDiscardsLocalToggles(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, _ = update(t, m, key(" "))
	m, cmd := update(t, m, key("r"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.False(t, m.StaffDirty)
	assert.False(t, m.Staff[0].IsAvailable)
}

func TestFailedSaveKeepsLocalToggles(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, _ = update(t, m, key(" "))
	api.failWrites = errors.New("server down")
	m, cmd := update(t, m, key("s"))
	m, _ = runMutation(t, m, cmd)

	assert.Equal(t, "server down", m.Error)
	assert.True(t, m.StaffDirty)
	assert.True(t, m.Staff[0].IsAvailable)

	api.failWrites = nil
	m, cmd = update(t, m, key("s"))
	m, _ = runMutation(t, m, cmd)
	require.Len(t, api.replaced, 2)
	assert.True(t, api.replaced[0].IsAvailable)
	assert.Equal(t, "Status pejabat disimpan", m.Status)
}

func TestStaffWriteKeepsPendingToggles(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, key("a"))
	for _, r := range "TAMU" {
		m, _ = update(t, m, key(string(r)))
	}
	m, cmd := update(t, m, key("enter"))
	m, _ = runMutation(t, m, cmd)
	m, _ = update(t, m, refetchStaff(api)())

	require.Len(t, m.Staff, 3)
	assert.Equal(t, "TAMU", m.Staff[2].Title)
	assert.True(t, m.Staff[0].IsAvailable, "pending toggle survives the refetch")
	assert.True(t, m.StaffDirty)
	assert.False(t, api.staff[0].IsAvailable)
}

func TestAddAnnouncement(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, _ = update(t, m, key("2"))
	assert.Equal(t, TabAnnouncements, m.Tab)

	m, _ = update(t, m, key("a"))
	assert.True(t, m.Adding)

	for _, r := range "Rapat" {
		m, _ = update(t, m, key(string(r)))
	}
	m, cmd := update(t, m, key("enter"))
	assert.False(t, m.Adding)

	m, _ = runMutation(t, m, cmd)
	assert.Equal(t, []string{"Rapat"}, api.created)
	assert.Equal(t, "Pengumuman ditambahkan", m.Status)
}

func TestAddCancelled(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)

	m, _ = update(t, m, key("a"))
	m, _ = update(t, m, key("x"))
	m, cmd := update(t, m, key("esc"))

	assert.False(t, m.Adding)
	assert.Nil(t, cmd)
	assert.Empty(t, api.created)
}

func TestAnnouncementToggleAndPriority(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)
	m, _ = update(t, m, key("2"))

	_, cmd := update(t, m, key(" "))
	runMutation(t, m, cmd)
	require.NotNil(t, api.annPatches[10].IsActive)
	assert.False(t, *api.annPatches[10].IsActive)

	m, _ = update(t, m, key("j"))
	assert.Equal(t, 1, m.Selected[TabAnnouncements])
	_, cmd = update(t, m, key("-"))
	runMutation(t, m, cmd)
	require.NotNil(t, api.annPatches[11].Priority)
	assert.Equal(t, 1, *api.annPatches[11].Priority)

	_, cmd = update(t, m, key("d"))
	runMutation(t, m, cmd)
	assert.Contains(t, api.deleted, int64(11))
}

func TestPlaylistActions(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)
	m, _ = update(t, m, key("3"))

	_, cmd := update(t, m, key("+"))
	m, _ = runMutation(t, m, cmd)
	require.NotNil(t, api.videoPatches[20].Priority)
	assert.Equal(t, 2, *api.videoPatches[20].Priority)
	assert.Equal(t, "Prioritas diubah", m.Status)

	m, _ = update(t, m, key("a"))
	for _, r := range "https://youtu.be/dQw4w9WgXcQ" {
		m, _ = update(t, m, key(string(r)))
	}
	_, cmd = update(t, m, key("enter"))
	runMutation(t, m, cmd)
	assert.Equal(t, []string{"https://youtu.be/dQw4w9WgXcQ"}, api.created)
}

func TestBannerClearsOnlyLatest(t *testing.T) {
	api := newFakeAPI()
	api.failWrites = errors.New("boom")
	m := loaded(t, api)

	_, cmd := update(t, m, key("d"))
	m, _ = runMutation(t, m, cmd)
	assert.Equal(t, "boom", m.Error)
	first := m.bannerID

	m, _ = update(t, m, mutationResultMsg{tab: TabStaff, status: "ok"})
	assert.Equal(t, "ok", m.Status)
	assert.Empty(t, m.Error)

	// The first banner's timer must not clear the second
	m, _ = update(t, m, clearBannerMsg{id: first})
	assert.Equal(t, "ok", m.Status)

	m, _ = update(t, m, clearBannerMsg{id: m.bannerID})
	assert.Empty(t, m.Status)
}

func TestTabNavigation(t *testing.T) {
	m := loaded(t, newFakeAPI())

	m, _ = update(t, m, key("tab"))
	assert.Equal(t, TabAnnouncements, m.Tab)
	m, _ = update(t, m, key("tab"))
	m, _ = update(t, m, key("tab"))
	assert.Equal(t, TabStaff, m.Tab)

	m, _ = update(t, m, key("k"))
	assert.Equal(t, 0, m.Selected[TabStaff])
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, key("j"))
	}
	assert.Equal(t, 1, m.Selected[TabStaff])
}

func TestSelectionClampedAfterReload(t *testing.T) {
	api := newFakeAPI()
	m := loaded(t, api)
	m, _ = update(t, m, key("j"))
	require.Equal(t, 1, m.Selected[TabStaff])

	api.staff = api.staff[:1]
	m, _ = update(t, m, loadStaff(api)())
	assert.Equal(t, 0, m.Selected[TabStaff])
}
