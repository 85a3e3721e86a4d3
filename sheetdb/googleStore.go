package sheetdb

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

type googleStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewGoogleStore wraps a Sheets v4 service as a Store. All writes use
// USER_ENTERED so dates and numbers keep the formatting the sheet's human
// editors expect.
func NewGoogleStore(svc *sheets.Service, spreadsheetID string) Store {
	return &googleStore{svc: svc, spreadsheetID: spreadsheetID}
}

func (g *googleStore) GetRange(ctx context.Context, rangeRef string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, cells := range resp.Values {
		row := make([]string, 0, len(cells))
		for _, cell := range cells {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (g *googleStore) AppendRows(ctx context.Context, rangeRef string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rangeRef, valueRange(rows)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (g *googleStore) UpdateRange(ctx context.Context, rangeRef string, rows [][]string) error {
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rangeRef, valueRange(rows)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	return err
}

func (g *googleStore) DeleteRowRange(ctx context.Context, sheetID int64, startIndex, endIndex int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(startIndex),
					EndIndex:   int64(endIndex),
				},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (g *googleStore) ListSheets(ctx context.Context) ([]SheetInfo, error) {
	meta, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	infos := make([]SheetInfo, 0, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties == nil {
			continue
		}
		infos = append(infos, SheetInfo{Title: sh.Properties.Title, SheetID: sh.Properties.SheetId})
	}
	return infos, nil
}

func valueRange(rows [][]string) *sheets.ValueRange {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}
	return &sheets.ValueRange{Values: values}
}
