package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"fundilink/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsWriter replaces an earnings spreadsheet with the exported bookings.
// Artisans who track earnings in Google Sheets get the same report the xlsx
// export produces, kept in place.
type SheetsWriter struct {
	service       *sheets.Service
	spreadsheetID string
	logger        zerolog.Logger
}

func NewSheetsWriter(ctx context.Context, credentialsFile, spreadsheetID string, logger *zerolog.Logger) (*SheetsWriter, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}

	return &SheetsWriter{
		service:       srv,
		spreadsheetID: spreadsheetID,
		logger:        logger.With().Str("component", "sheets-export").Logger(),
	}, nil
}

func (w *SheetsWriter) WriteBookings(ctx context.Context, bookings []models.Booking, from, to time.Time) error {
	rows := [][]interface{}{
		{fmt.Sprintf("Period: %s - %s", from.Format("02.01.2006"), to.Format("02.01.2006"))},
		{"ID", "Service", "Customer", "Scheduled", "Status", "Final price"},
	}

	var total int64
	for _, b := range bookings {
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
		rows = append(rows, []interface{}{b.ID, b.Service, customer, scheduled, b.Status, price})
		total += price
	}
	rows = append(rows, []interface{}{"", "", "", "", "Total", total})

	clearReq := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, "A:Z", &sheets.ClearValuesRequest{})
	if _, err := clearReq.Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear earnings sheet: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: rows}
	updateReq := w.service.Spreadsheets.Values.Update(w.spreadsheetID, "A1", valueRange).ValueInputOption("RAW")
	if _, err := updateReq.Context(ctx).Do(); err != nil {
		return fmt.Errorf("update earnings sheet: %w", err)
	}

	w.logger.Info().Int("bookings", len(bookings)).Msg("earnings sheet updated")
	return nil
}
