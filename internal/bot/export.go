package bot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"huonganh/internal/database"
	"huonganh/internal/domain"
	"huonganh/internal/notify"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter writes the full booking list to an Excel workbook.
type Exporter struct {
	store  domain.Store
	path   string
	logger *zerolog.Logger
}

func NewExporter(store domain.Store, path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, path: path, logger: logger}
}

var exportHeaders = []string{"ID", "Khách hàng", "SĐT", "Email", "Dịch vụ", "Ngày", "Giờ", "Trạng thái", "Ghi chú", "Tạo lúc"}

// ExportBookings renders every booking (hidden ones included) into one sheet
// and returns the saved file path.
func (e *Exporter) ExportBookings(ctx context.Context) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bookings, err := e.store.ListBookings(ctx, database.BookingFilter{OrderBy: "booking_date"})
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Đặt lịch"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.Name,
			b.Phone,
			b.Email,
			b.Service,
			b.BookingDate.Format("02/01/2006"),
			b.BookingTime,
			notify.StatusLabel(b.Status),
			b.Message,
			b.CreatedAt.Format("02/01/2006 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "J", 20)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("excel export created")
	return filePath, nil
}
