// setup-sheet creates any entity sheet missing from the spreadsheet and
// writes its header row. Existing sheets are left untouched: headers are
// documentation for humans, the row codec is positional and never reads
// them.
//
// Usage:
//
//	SPREADSHEET_ID=... GOOGLE_SHEETS_CREDENTIALS=... go run ./cmd/setup-sheet
package main

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/sheets/v4"

	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/models"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
)

// The Inventory header is the one the branch coordinators' sheet UI
// shows; it has to stay exactly as the forms expect it.
var inventoryHeader = []string{"الفرع", "كراسي معاقين", "ووكر متحرك", "فرشات هوا", "تخوت مرضى", "جهاز أوكسجين", "عكازات"}

func headerFor(entity models.EntityType) []string {
	if entity == models.EntityInventory {
		return inventoryHeader
	}
	return models.CurrentSchema(entity).Fields
}

func main() {
	ctx := context.Background()
	if err := config.ConnectSheets(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to spreadsheet: %v\n", err)
		os.Exit(1)
	}
	svc := config.GetSheetsService()
	spreadsheetID := config.GetSpreadsheetID()

	meta, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read spreadsheet metadata: %v\n", err)
		os.Exit(1)
	}
	existing := map[string]bool{}
	for _, sh := range meta.Sheets {
		existing[sh.Properties.Title] = true
	}

	for _, entity := range models.AllEntities() {
		b, _ := models.BindingFor(entity)
		if existing[b.Sheet] {
			fmt.Printf("sheet %q already exists\n", b.Sheet)
			continue
		}
		fmt.Printf("creating sheet %q...\n", b.Sheet)
		_, err := svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: b.Sheet},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create sheet %q: %v\n", b.Sheet, err)
			os.Exit(1)
		}

		header := headerFor(entity)
		headerRange := fmt.Sprintf("%s!A1:%s1", b.Sheet, sheetdb.ColumnLetter(len(header)-1))
		values := make([]interface{}, len(header))
		for i, h := range header {
			values[i] = h
		}
		_, err = svc.Spreadsheets.Values.Update(spreadsheetID, headerRange, &sheets.ValueRange{
			Values: [][]interface{}{values},
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to write header for %q: %v\n", b.Sheet, err)
			os.Exit(1)
		}
		fmt.Printf("sheet %q created with headers\n", b.Sheet)
	}
}
