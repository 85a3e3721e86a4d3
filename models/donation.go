package models

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/alrahmateam/medaid_backend/utils"
)

// Stored kind values. The legacy data also contains "صرف" (expense) used
// as a ledger selector; decode normalizes that into the explicit Ledger
// field instead of keeping classification and ledger fused.
const (
	KindCash    = "نقدي"
	KindInKind  = "عيني"
	KindExpense = "صرف"
)

const (
	LedgerReceived = "received"
	LedgerSpent    = "spent"
)

// DonationRecord covers both ledgers; Ledger names the physical sheet
// the row lives in and is not itself a column.
type DonationRecord struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	Month        string `json:"month"`
	Year         string `json:"year"`
	Branch       string `json:"branch"`
	PartyName    string `json:"party_name"`
	Kind         string `json:"kind"`
	Method       string `json:"method"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	InKindType   string `json:"in_kind_type"`
	Quantity     string `json:"quantity"`
	UsagePurpose string `json:"usage_purpose"`
	Recipient    string `json:"recipient"`
	Notes        string `json:"notes"`
	CreatedAt    string `json:"created_at"`
	Status       string `json:"status"`
	Ledger       string `json:"ledger"`
}

func (d *DonationRecord) RecordID() string { return d.ID }
func (d *DonationRecord) SortDate() string { return d.Date }
func (d *DonationRecord) IsDeleted() bool  { return d.Status == StatusDeleted }

// AmountValue parses the stored amount for arithmetic. Amounts round-trip
// as strings; math happens only after an explicit parse.
func (d *DonationRecord) AmountValue() decimal.Decimal {
	return utils.ParseAmount(d.Amount)
}

// DecodeDonation maps a stored row from the named ledger. Old 15-column
// rows (no month/year) and new 17-column rows decode to the same record.
func DecodeDonation(row []string, ledger string) *DonationRecord {
	fields := decodeTo(EntityDonations, row, DetectSchema(EntityDonations, len(row)))
	if fields["id"] == "" {
		return nil
	}
	d := &DonationRecord{
		ID:           fields["id"],
		Date:         fields["date"],
		Month:        fields["month"],
		Year:         fields["year"],
		Branch:       fields["branch"],
		PartyName:    fields["party_name"],
		Kind:         fields["kind"],
		Method:       fields["method"],
		Amount:       fields["amount"],
		Currency:     fields["currency"],
		InKindType:   fields["in_kind_type"],
		Quantity:     fields["quantity"],
		UsagePurpose: fields["usage_purpose"],
		Recipient:    fields["recipient"],
		Notes:        fields["notes"],
		CreatedAt:    fields["created_at"],
		Status:       fields["status"],
		Ledger:       ledger,
	}
	// Legacy rows flag spending through the kind column.
	if d.Ledger == "" {
		if d.Kind == KindExpense {
			d.Ledger = LedgerSpent
		} else {
			d.Ledger = LedgerReceived
		}
	}
	return d
}

func DecodeDonations(rows [][]string, ledger string) []*DonationRecord {
	out := make([]*DonationRecord, 0, len(rows))
	for _, row := range rows {
		if d := DecodeDonation(row, ledger); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// Row encodes under the current schema. Month and year are derived from
// the date at write time; stale stored values never win over the date.
func (d *DonationRecord) Row() []string {
	month, year := DateParts(d.Date)
	if month == "" {
		month, year = d.Month, d.Year
	}
	return []string{
		d.ID,
		d.Date,
		month,
		year,
		d.Branch,
		d.PartyName,
		d.Kind,
		d.Method,
		d.Amount,
		d.Currency,
		d.InKindType,
		d.Quantity,
		d.UsagePurpose,
		d.Recipient,
		d.Notes,
		d.CreatedAt,
		d.Status,
	}
}

// LedgerEntity maps a ledger name to its physical store.
func LedgerEntity(ledger string) EntityType {
	if ledger == LedgerSpent {
		return EntityExpenses
	}
	return EntityDonations
}
