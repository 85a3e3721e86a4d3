package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	sheetsService *sheets.Service
	spreadsheetID string
)

// ConnectSheets initializes the shared Sheets v4 service.
//
// Credentials resolution order:
// 1. GOOGLE_SHEETS_CREDENTIALS — inline service-account JSON (Cloud Run secret)
// 2. credentials.json next to the binary (local dev)
// 3. Application Default Credentials
func ConnectSheets(ctx context.Context) error {
	spreadsheetID = strings.TrimSpace(os.Getenv("SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return errors.New("SPREADSHEET_ID not set")
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credJSON := strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CREDENTIALS")); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if _, err := os.Stat("credentials.json"); err == nil {
		opts = append(opts, option.WithCredentialsFile("credentials.json"))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return err
	}
	sheetsService = svc
	return nil
}

func GetSheetsService() *sheets.Service {
	return sheetsService
}

func GetSpreadsheetID() string {
	return spreadsheetID
}
