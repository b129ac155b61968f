package adminui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	colorAccent  = "#00B8D4"
	colorOK      = "#2E7D32"
	colorError   = "#C62828"
	colorMuted   = "#757575"
	defaultWidth = 80
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(colorAccent)).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Padding(0, 1)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOK))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOK)).Bold(true)
)

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SIGNAGE ADMIN · SKB Salatiga"))
	s.WriteString("\n\n")

	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.Tab {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = inactiveTabStyle.Render(label)
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	s.WriteString("\n\n")

	switch m.Tab {
	case TabStaff:
		m.viewStaff(&s)
	case TabAnnouncements:
		m.viewAnnouncements(&s)
	default:
		m.viewPlaylist(&s)
	}

	s.WriteString("\n")
	if m.Adding {
		s.WriteString(m.input.View())
		s.WriteString("\n")
		s.WriteString(mutedStyle.Render("enter simpan · esc batal"))
	} else {
		s.WriteString(mutedStyle.Render(m.help()))
	}
	s.WriteString("\n")

	if m.Status != "" {
		s.WriteString("\n" + statusStyle.Render(m.Status))
	}
	if m.Error != "" {
		s.WriteString("\n" + errorStyle.Render("Error: "+m.Error))
	}

	return s.String()
}

func (m Model) help() string {
	common := "tab pindah · ↑/↓ pilih · a tambah · d hapus · r muat ulang · q keluar"
	switch m.Tab {
	case TabStaff:
		return "spasi ubah status · s simpan semua · " + common
	default:
		return "spasi aktif/nonaktif · +/- prioritas · " + common
	}
}

// textWidth is the room left for the text column
func (m Model) textWidth(reserved int) int {
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	if width-reserved < 10 {
		return 10
	}
	return width - reserved
}

func cursor(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func (m Model) viewStaff(s *strings.Builder) {
	if len(m.Staff) == 0 {
		s.WriteString(mutedStyle.Render("Belum ada pejabat"))
		s.WriteString("\n")
		return
	}

	width := m.textWidth(16)
	for i, staff := range m.Staff {
		selected := i == m.Selected[TabStaff]
		title := runewidth.FillRight(runewidth.Truncate(staff.Title, width, "…"), width)

		label := errorStyle.Render("TIDAK ADA")
		if staff.IsAvailable {
			label = okStyle.Render("ADA")
		}

		line := cursor(selected) + title + " " + label
		if selected {
			line = cursor(selected) + selectedStyle.Render(title) + " " + label
		}
		s.WriteString(line + "\n")
	}

	if m.StaffDirty {
		s.WriteString("\n" + errorStyle.Render("Perubahan belum disimpan (tekan s)") + "\n")
	}
}

func (m Model) viewAnnouncements(s *strings.Builder) {
	if len(m.Announcements) == 0 {
		s.WriteString(mutedStyle.Render("Tidak ada pengumuman saat ini."))
		s.WriteString("\n")
		return
	}

	width := m.textWidth(22)
	for i, ann := range m.Announcements {
		selected := i == m.Selected[TabAnnouncements]
		text := runewidth.Truncate(ann.Text, width, "…")
		s.WriteString(m.row(selected, ann.IsActive, ann.Priority, text))
	}
}

func (m Model) viewPlaylist(s *strings.Builder) {
	if len(m.Playlist) == 0 {
		s.WriteString(mutedStyle.Render("Playlist kosong"))
		s.WriteString("\n")
		return
	}

	width := m.textWidth(22)
	for i, entry := range m.Playlist {
		selected := i == m.Selected[TabPlaylist]
		text := entry.VideoID
		if entry.Title.Valid && entry.Title.String != "" {
			text += " · " + entry.Title.String
		}
		s.WriteString(m.row(selected, entry.IsActive, entry.Priority, runewidth.Truncate(text, width, "…")))
	}
}

// row renders "[x] p=N text" for an active-flagged, prioritised item
func (m Model) row(selected, active bool, priority int, text string) string {
	mark := mutedStyle.Render("[ ]")
	if active {
		mark = okStyle.Render("[x]")
	}
	if selected {
		text = selectedStyle.Render(text)
	} else if !active {
		text = mutedStyle.Render(text)
	}
	return fmt.Sprintf("%s%s p=%-3d %s\n", cursor(selected), mark, priority, text)
}
