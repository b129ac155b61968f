package adminui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skbsalatiga/signage-backend/internal/models"
)

// Tab is one managed collection
type Tab int

const (
	TabStaff Tab = iota
	TabAnnouncements
	TabPlaylist
)

var tabNames = []string{"Pejabat", "Running Text", "Video Playlist"}

func (t Tab) String() string {
	if int(t) < len(tabNames) {
		return tabNames[t]
	}
	return "?"
}

// Model is the admin console
type Model struct {
	api API

	Tab      Tab
	Selected [3]int

	Staff         []models.StaffStatus
	StaffDirty    bool // local toggles not yet saved
	Announcements []models.Announcement
	Playlist      []models.VideoPlaylistEntry

	Adding bool
	input  textinput.Model

	Status   string
	Error    string
	bannerID int

	Width int
}

// New creates the console model for api
func New(api API) Model {
	input := textinput.New()
	input.CharLimit = 500
	input.Width = 60

	return Model{
		api:           api,
		Tab:           TabStaff,
		Staff:         []models.StaffStatus{},
		Announcements: []models.Announcement{},
		Playlist:      []models.VideoPlaylistEntry{},
		input:         input,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadStaff(m.api), loadAnnouncements(m.api), loadPlaylist(m.api))
}

// setBanner shows a banner and schedules its removal
func (m *Model) setBanner(status string, err error) tea.Cmd {
	m.bannerID++
	if err != nil {
		m.Status = ""
		m.Error = err.Error()
	} else {
		m.Status = status
		m.Error = ""
	}
	return clearBannerAfter(m.bannerID, bannerTimeout)
}

func (m Model) listLen() int {
	switch m.Tab {
	case TabStaff:
		return len(m.Staff)
	case TabAnnouncements:
		return len(m.Announcements)
	default:
		return len(m.Playlist)
	}
}

// clampSelection keeps the cursor inside the current list
func (m *Model) clampSelection() {
	m.clampTab(m.Tab, m.listLen())
}

func (m Model) reload(tab Tab) tea.Cmd {
	switch tab {
	case TabStaff:
		return loadStaff(m.api)
	case TabAnnouncements:
		return loadAnnouncements(m.api)
	default:
		return loadPlaylist(m.api)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case clearBannerMsg:
		if msg.id == m.bannerID {
			m.Status = ""
			m.Error = ""
		}
		return m, nil

	case staffLoadedMsg:
		if msg.err != nil {
			return m, m.setBanner("", fmt.Errorf("gagal memuat pejabat: %w", msg.err))
		}
		if msg.keepToggles && m.StaffDirty {
			m.Staff = mergeToggles(msg.staff, m.Staff)
		} else {
			m.Staff = msg.staff
			m.StaffDirty = false
		}
		m.clampTab(TabStaff, len(m.Staff))
		return m, nil

	case announcementsLoadedMsg:
		if msg.err != nil {
			return m, m.setBanner("", fmt.Errorf("gagal memuat pengumuman: %w", msg.err))
		}
		m.Announcements = msg.announcements
		m.clampTab(TabAnnouncements, len(m.Announcements))
		return m, nil

	case playlistLoadedMsg:
		if msg.err != nil {
			return m, m.setBanner("", fmt.Errorf("gagal memuat playlist: %w", msg.err))
		}
		m.Playlist = msg.entries
		m.clampTab(TabPlaylist, len(m.Playlist))
		return m, nil

	case mutationResultMsg:
		banner := m.setBanner(msg.status, msg.err)
		if msg.tab == TabStaff && m.StaffDirty {
			if msg.saveAll && msg.err != nil {
				// Unsaved toggles stay so the save can be retried
				return m, banner
			}
			if !msg.saveAll {
				return m, tea.Batch(banner, refetchStaff(m.api))
			}
		}
		// Refetch either way so the list shows what the server holds
		return m, tea.Batch(banner, m.reload(msg.tab))

	case tea.KeyMsg:
		if m.Adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	if m.Adding {
		// Cursor blink
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// mergeToggles applies local availability to fetched rows that still exist
func mergeToggles(fetched, local []models.StaffStatus) []models.StaffStatus {
	available := make(map[int64]bool, len(local))
	for _, s := range local {
		available[s.ID] = s.IsAvailable
	}
	merged := make([]models.StaffStatus, len(fetched))
	for i, s := range fetched {
		if v, ok := available[s.ID]; ok {
			s.IsAvailable = v
		}
		merged[i] = s
	}
	return merged
}

func (m *Model) clampTab(tab Tab, n int) {
	if m.Selected[tab] >= n {
		m.Selected[tab] = n - 1
	}
	if m.Selected[tab] < 0 {
		m.Selected[tab] = 0
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		m.Adding = false
		m.input.Blur()
		m.input.SetValue("")

		switch m.Tab {
		case TabStaff:
			return m, addStaff(m.api, value)
		case TabAnnouncements:
			return m, createAnnouncement(m.api, value)
		default:
			return m, addPlaylistEntry(m.api, value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right", "l":
		m.Tab = (m.Tab + 1) % 3
		return m, nil

	case "shift+tab", "left", "h":
		m.Tab = (m.Tab + 2) % 3
		return m, nil

	case "1", "2", "3":
		m.Tab = Tab(msg.String()[0] - '1')
		return m, nil

	case "up", "k":
		m.Selected[m.Tab]--
		m.clampSelection()
		return m, nil

	case "down", "j":
		m.Selected[m.Tab]++
		m.clampSelection()
		return m, nil

	case "r":
		return m, m.reload(m.Tab)

	case "a":
		m.Adding = true
		m.input.Placeholder = m.addPlaceholder()
		return m, m.input.Focus()
	}

	if m.listLen() == 0 {
		return m, nil
	}

	switch m.Tab {
	case TabStaff:
		return m.updateStaffKeys(msg)
	case TabAnnouncements:
		return m.updateAnnouncementKeys(msg)
	default:
		return m.updatePlaylistKeys(msg)
	}
}

func (m Model) addPlaceholder() string {
	switch m.Tab {
	case TabStaff:
		return "Jabatan baru"
	case TabAnnouncements:
		return "Teks pengumuman"
	default:
		return "ID atau URL lengkap YouTube"
	}
}

// Staff toggles stay local until saved with s
func (m Model) updateStaffKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sel := m.Selected[TabStaff]
	switch msg.String() {
	case " ", "enter":
		staff := append([]models.StaffStatus(nil), m.Staff...)
		staff[sel].IsAvailable = !staff[sel].IsAvailable
		m.Staff = staff
		m.StaffDirty = true
		return m, nil

	case "s":
		return m, saveStaff(m.api, m.Staff)

	case "d":
		return m, removeStaff(m.api, m.Staff[sel].ID)
	}
	return m, nil
}

func (m Model) updateAnnouncementKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ann := m.Announcements[m.Selected[TabAnnouncements]]
	switch msg.String() {
	case " ", "enter":
		active := !ann.IsActive
		return m, patchAnnouncement(m.api, ann.ID, models.AnnouncementPatch{IsActive: &active}, activeStatus("Pengumuman", active))

	case "+", "=":
		priority := ann.Priority + 1
		return m, patchAnnouncement(m.api, ann.ID, models.AnnouncementPatch{Priority: &priority}, "Prioritas diubah")

	case "-":
		priority := ann.Priority - 1
		return m, patchAnnouncement(m.api, ann.ID, models.AnnouncementPatch{Priority: &priority}, "Prioritas diubah")

	case "d":
		return m, deleteAnnouncement(m.api, ann.ID)
	}
	return m, nil
}

func (m Model) updatePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entry := m.Playlist[m.Selected[TabPlaylist]]
	switch msg.String() {
	case " ", "enter":
		active := !entry.IsActive
		return m, patchPlaylistEntry(m.api, entry.ID, models.VideoPatch{IsActive: &active}, activeStatus("Video", active))

	case "+", "=":
		priority := entry.Priority + 1
		return m, patchPlaylistEntry(m.api, entry.ID, models.VideoPatch{Priority: &priority}, "Prioritas diubah")

	case "-":
		priority := entry.Priority - 1
		return m, patchPlaylistEntry(m.api, entry.ID, models.VideoPatch{Priority: &priority}, "Prioritas diubah")

	case "d":
		return m, deletePlaylistEntry(m.api, entry.ID)
	}
	return m, nil
}

func activeStatus(what string, active bool) string {
	if active {
		return what + " diaktifkan"
	}
	return what + " dinonaktifkan"
}
