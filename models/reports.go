package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlyDonationTotal is one (year, month, currency) bucket of a ledger.
// Currency strings are opaque grouping keys; the sheet mixes "USD", "$"
// and local-currency spellings and the report does not try to unify them.
type MonthlyDonationTotal struct {
	Year     string          `json:"year"`
	Month    string          `json:"month"`
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// MonthlyDonationTotals aggregates cash amounts per month and currency.
// In-kind rows count toward Count but contribute no amount.
func MonthlyDonationTotals(records []*DonationRecord) []MonthlyDonationTotal {
	type key struct{ year, month, currency string }
	buckets := map[key]*MonthlyDonationTotal{}

	for _, d := range records {
		month, year := DateParts(d.Date)
		if month == "" {
			// old rows: trust the stored derived columns
			month, year = d.Month, d.Year
		}
		k := key{year, month, d.Currency}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &MonthlyDonationTotal{Year: year, Month: month, Currency: d.Currency}
			buckets[k] = bucket
		}
		bucket.Count++
		if d.Kind != KindInKind {
			bucket.Total = bucket.Total.Add(d.AmountValue())
		}
	}

	out := make([]MonthlyDonationTotal, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Currency < out[j].Currency
	})
	return out
}

type MonthlyCaseCount struct {
	Year   string `json:"year"`
	Month  string `json:"month"`
	Branch string `json:"branch"`
	Count  int    `json:"count"`
}

func MonthlyCaseCounts(records []*CaseRecord) []MonthlyCaseCount {
	type key struct{ year, month, branch string }
	buckets := map[key]*MonthlyCaseCount{}

	for _, c := range records {
		month, year := DateParts(c.Date)
		k := key{year, month, c.Branch}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &MonthlyCaseCount{Year: year, Month: month, Branch: c.Branch}
			buckets[k] = bucket
		}
		bucket.Count++
	}

	out := make([]MonthlyCaseCount, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		return out[i].Branch < out[j].Branch
	})
	return out
}
