// self-heal runs one reconcile pass and exits: raw form submissions that
// never reached the canonical sheets get promoted. Meant for cron or for
// a manual run after a form outage.
//
// Usage:
//
//	SPREADSHEET_ID=... GOOGLE_SHEETS_CREDENTIALS=... go run ./cmd/self-heal
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/alrahmateam/medaid_backend/config"
	"bitbucket.org/alrahmateam/medaid_backend/ledger"
	"bitbucket.org/alrahmateam/medaid_backend/sheetdb"
	"bitbucket.org/alrahmateam/medaid_backend/sheetsync"
)

func main() {
	ctx := context.Background()
	if err := config.ConnectSheets(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to spreadsheet: %v\n", err)
		os.Exit(1)
	}
	// Redis is optional here; with it the run takes the same lock as the
	// server's worker so the two never promote concurrently.
	config.ConnectRedisWithRetry()

	var store sheetdb.Store = sheetdb.NewGoogleStore(config.GetSheetsService(), config.GetSpreadsheetID())
	store = sheetdb.NewRetryStore(store, config.SheetOpTimeout())

	worker := sheetsync.NewWorker(ledger.NewService(store), 0)
	stats := worker.RunOnce(ctx)
	if stats == nil {
		fmt.Println("sync lock held elsewhere, nothing done")
		return
	}
	failed := false
	for _, st := range stats {
		fmt.Printf("%s: merged=%d promoted=%d errors=%d (%dms)\n",
			st.Entity, st.Merged, st.Promoted, st.Errors, st.DurationMs)
		if st.Errors > 0 {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
