package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fundilink/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// ExcelWriter renders a bookings report to an .xlsx file under the
// configured exports directory.
type ExcelWriter struct {
	path   string
	logger zerolog.Logger
}

func NewExcelWriter(path string, logger *zerolog.Logger) *ExcelWriter {
	return &ExcelWriter{
		path:   path,
		logger: logger.With().Str("component", "excel-export").Logger(),
	}
}

func (w *ExcelWriter) WriteBookings(ctx context.Context, bookings []models.Booking, from, to time.Time) error {
	if err := os.MkdirAll(w.path, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		from.Format("02.01.2006"), to.Format("02.01.2006")))

	headers := []string{"ID", "Service", "Customer", "Scheduled", "Status", "Final price"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	var total int64
	row := 3
	for _, b := range bookings {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		customer := ""
		if b.Customer != nil {
			customer = b.Customer.Name
		}
		scheduled := ""
		if b.ScheduledDate != nil {
			scheduled = b.ScheduledDate.Format("02.01.2006 15:04")
		}
		price := b.FinalPrice
		if price == 0 {
			price = b.AgreedPrice
		}

		values := []any{b.ID, b.Service, customer, scheduled, b.Status, price}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
		total += price
		row++
	}

	totalCell, _ := excelize.CoordinatesToCellName(len(headers), row)
	labelCell, _ := excelize.CoordinatesToCellName(len(headers)-1, row)
	_ = f.SetCellValue(sheetName, labelCell, "Total")
	_ = f.SetCellValue(sheetName, totalCell, total)

	_ = f.SetColWidth(sheetName, "A", "A", 28)
	_ = f.SetColWidth(sheetName, "B", "F", 20)

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	filePath := filepath.Join(w.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("save export file: %w", err)
	}

	w.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel report written")
	return nil
}
