package ledger

import (
	"sort"
	"strconv"

	"bitbucket.org/alrahmateam/medaid_backend/models"
)

// Record is what the reconciliation pipeline needs from any entity type.
type Record interface {
	RecordID() string
	SortDate() string
	IsDeleted() bool
}

// Merge combines the canonical and raw views of one entity. Canonical
// rows win duplicate ids outright; the raw variant is dropped, never
// merged field by field. The second result is the raw-only records: the
// candidates for promotion into canonical storage. Decoders have already
// dropped id-less rows from both inputs.
func Merge[T Record](canonical, raw []T) (merged []T, missing []T) {
	seen := make(map[string]struct{}, len(canonical))
	merged = make([]T, 0, len(canonical)+len(raw))
	for _, rec := range canonical {
		if _, dup := seen[rec.RecordID()]; dup {
			continue
		}
		seen[rec.RecordID()] = struct{}{}
		merged = append(merged, rec)
	}
	for _, rec := range raw {
		if _, dup := seen[rec.RecordID()]; dup {
			continue
		}
		seen[rec.RecordID()] = struct{}{}
		merged = append(merged, rec)
		missing = append(missing, rec)
	}
	return merged, missing
}

// FilterDeleted drops soft-deleted records. Runs after the merge and
// before ordering.
func FilterDeleted[T Record](records []T) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if rec.IsDeleted() {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// SortRecords orders newest first: date descending, then id token
// descending. Unparsable dates compare as the minimum date so the order
// stays total; they end up last.
func SortRecords[T Record](records []T) {
	sort.SliceStable(records, func(i, j int) bool {
		di, _ := models.ParseDate(records[i].SortDate())
		dj, _ := models.ParseDate(records[j].SortDate())
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return CompareIDs(records[i].RecordID(), records[j].RecordID()) > 0
	})
}

// CompareIDs orders id tokens. Ids are creation-timestamp integers, so
// numeric comparison is the meaningful one; anything non-numeric falls
// back to byte order.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
