package export

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"fundilink/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWriterWriteBookings(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.New(io.Discard)
	writer := NewExcelWriter(dir, &logger)

	scheduled := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		{
			ID:            "b1",
			Service:       "Plumbing repair",
			Status:        models.StatusCompleted,
			FinalPrice:    15000,
			ScheduledDate: &scheduled,
			Customer:      &models.Profile{Name: "Jane Wanjiku"},
		},
		{
			ID:          "b2",
			Service:     "Electrical wiring",
			Status:      models.StatusCompleted,
			AgreedPrice: 8000, // no final price yet, agreed price stands in
		},
	}

	err := writer.WriteBookings(context.Background(), bookings, from, to)
	require.NoError(t, err)

	path := filepath.Join(dir, "bookings_2026-02-01_to_2026-02-28.xlsx")
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Period: 01.02.2026 - 28.02.2026", title)

	header, _ := f.GetCellValue("Bookings", "A2")
	assert.Equal(t, "ID", header)

	id, _ := f.GetCellValue("Bookings", "A3")
	assert.Equal(t, "b1", id)
	customer, _ := f.GetCellValue("Bookings", "C3")
	assert.Equal(t, "Jane Wanjiku", customer)
	when, _ := f.GetCellValue("Bookings", "D3")
	assert.Equal(t, "14.02.2026 09:30", when)
	price, _ := f.GetCellValue("Bookings", "F3")
	assert.Equal(t, "15000", price)

	fallbackPrice, _ := f.GetCellValue("Bookings", "F4")
	assert.Equal(t, "8000", fallbackPrice)

	label, _ := f.GetCellValue("Bookings", "E5")
	assert.Equal(t, "Total", label)
	total, _ := f.GetCellValue("Bookings", "F5")
	assert.Equal(t, "23000", total)
}

func TestExcelWriterEmptyReport(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.New(io.Discard)
	writer := NewExcelWriter(dir, &logger)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	err := writer.WriteBookings(context.Background(), nil, from, to)
	require.NoError(t, err)

	path := filepath.Join(dir, "bookings_2026-01-01_to_2026-01-31.xlsx")
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	total, _ := f.GetCellValue("Bookings", "F3")
	assert.Equal(t, "0", total)
}

func TestExcelWriterCancelledContext(t *testing.T) {
	dir := t.TempDir()
	logger := zerolog.New(io.Discard)
	writer := NewExcelWriter(dir, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writer.WriteBookings(ctx, []models.Booking{{ID: "b1"}}, time.Now(), time.Now())
	assert.ErrorIs(t, err, context.Canceled)
}
