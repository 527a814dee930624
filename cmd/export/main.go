package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"fundilink/internal/api"
	"fundilink/internal/config"
	"fundilink/internal/export"
	"fundilink/internal/logging"
	"fundilink/internal/models"
)

// One-shot bookings report: fetches every page the backend will give and
// writes the xlsx report, plus the Google earnings sheet when configured.
func main() {
	status := flag.String("status", models.StatusCompleted, "booking status to export, empty for all")
	months := flag.Int("months", 1, "how many months back the report covers")
	flag.Parse()

	if err := run(*status, *months); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(status string, months int) error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger := baseLogger.With().Str("component", "export").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := api.NewClient(cfg.API, &logger)

	var bookings []models.Booking
	for page := 1; ; page++ {
		result, err := client.FetchBookings(ctx, models.BookingQuery{
			Status: status,
			Page:   page,
			Limit:  100,
		})
		if err != nil {
			return err
		}
		bookings = append(bookings, result.Bookings...)
		if page >= result.Pagination.Pages || len(result.Bookings) == 0 {
			break
		}
	}

	to := time.Now()
	from := to.AddDate(0, -months, 0)

	excel := export.NewExcelWriter(cfg.Exports.Path, &logger)
	if err := excel.WriteBookings(ctx, bookings, from, to); err != nil {
		return err
	}

	if cfg.Google.CredentialsFile != "" && cfg.Google.EarningsSpreadsheetID != "" {
		sheetsWriter, err := export.NewSheetsWriter(ctx, cfg.Google.CredentialsFile, cfg.Google.EarningsSpreadsheetID, &logger)
		if err != nil {
			return err
		}
		if err := sheetsWriter.WriteBookings(ctx, bookings, from, to); err != nil {
			return err
		}
	}

	logger.Info().Int("bookings", len(bookings)).Msg("export finished")
	return nil
}
