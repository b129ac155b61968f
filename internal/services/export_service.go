package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"github.com/skbsalatiga/signage-backend/pkg/validator"
	"github.com/xuri/excelize/v2"
)

var youtube = validator.NewVideoIDValidator()

// Sheet names of the content workbook
const (
	SheetStaff         = "Staff"
	SheetAnnouncements = "Announcements"
	SheetPlaylist      = "Video Playlist"
)

var (
	staffHeader        = []string{"ID", "Title", "Available"}
	announcementHeader = []string{"ID", "Text", "Active", "Priority", "Created At"}
	playlistHeader     = []string{"ID", "Video ID", "Title", "Active", "Priority", "Updated At", "URL"}
)

// ExportService renders all content as an XLSX workbook
type ExportService struct {
	store database.Store
}

// NewExportService creates a new ExportService
func NewExportService(store database.Store) *ExportService {
	return &ExportService{store: store}
}

// ContentWorkbook returns the workbook bytes with one sheet per collection,
// including inactive entries
func (s *ExportService) ContentWorkbook(ctx context.Context) ([]byte, error) {
	staff, err := s.store.ListStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	anns, err := s.store.ListAllAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load announcements: %w", err)
	}
	playlist, err := s.store.ListAllVideoPlaylist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}

	f := excelize.NewFile()
	// WriteTo needs the file open, so Close comes last
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	staffRows := make([][]interface{}, len(staff))
	for i, st := range staff {
		staffRows[i] = []interface{}{st.ID, st.Title, yesNo(st.IsAvailable)}
	}

	annRows := make([][]interface{}, len(anns))
	for i, a := range anns {
		annRows[i] = []interface{}{a.ID, a.Text, yesNo(a.IsActive), a.Priority, formatTimestamp(a.CreatedAt)}
	}

	playlistRows := make([][]interface{}, len(playlist))
	for i, e := range playlist {
		playlistRows[i] = []interface{}{
			e.ID, e.VideoID, e.Title.String, yesNo(e.IsActive), e.Priority,
			formatTimestamp(e.UpdatedAt), youtube.WatchURL(e.VideoID),
		}
	}

	sheets := []struct {
		name   string
		header []string
		widths []float64
		rows   [][]interface{}
	}{
		{SheetStaff, staffHeader, []float64{8, 30, 12}, staffRows},
		{SheetAnnouncements, announcementHeader, []float64{8, 60, 10, 10, 20}, annRows},
		{SheetPlaylist, playlistHeader, []float64{8, 16, 40, 10, 10, 20, 45}, playlistRows},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}

		if err := writeSheet(f, sh.name, sh.header, sh.widths, sh.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, rows [][]interface{}, headerStyle int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if col < len(widths) {
			if err := f.SetColWidth(sheet, name, name, widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", r+2, sheet, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatTimestamp(ts string) string {
	t := models.ParseTimestamp(ts)
	if t.IsZero() {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}
