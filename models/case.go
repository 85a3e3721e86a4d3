package models

// CaseRecord is an emergency case. Canonical rows live in the Cases
// sheet; direct form submissions land in Cases_Raw_Data under a reduced
// schema and are reconciled in.
type CaseRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Branch      string `json:"branch"`
	Gender      string `json:"gender"`
	CaseType    string `json:"case_type"`
	Description string `json:"description"`
	Team        string `json:"team"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
	Status      string `json:"status"`
}

func (c *CaseRecord) RecordID() string { return c.ID }
func (c *CaseRecord) SortDate() string { return c.Date }
func (c *CaseRecord) IsDeleted() bool  { return c.Status == StatusDeleted }

// DecodeCase maps one canonical row. Returns nil for rows without an id:
// they are excluded from standard processing (the raw path may still see
// them).
func DecodeCase(row []string) *CaseRecord {
	fields := decodeTo(EntityCases, row, DetectSchema(EntityCases, len(row)))
	if fields["id"] == "" {
		return nil
	}
	return &CaseRecord{
		ID:          fields["id"],
		Date:        fields["date"],
		Branch:      fields["branch"],
		Gender:      fields["gender"],
		CaseType:    fields["case_type"],
		Description: fields["description"],
		Team:        fields["team"],
		Notes:       fields["notes"],
		CreatedAt:   fields["created_at"],
		Status:      fields["status"],
	}
}

// DecodeRawCase maps a form-submission row into the canonical shape. The
// raw schema has no description or team columns; those encode as empty
// strings. The form timestamp doubles as id and creation time.
func DecodeRawCase(row []string) *CaseRecord {
	fields := decodeTo(EntityCasesRaw, row, DetectSchema(EntityCasesRaw, len(row)))
	if fields["id"] == "" {
		return nil
	}
	return &CaseRecord{
		ID:        fields["id"],
		Date:      fields["date"],
		Branch:    fields["branch"],
		Gender:    fields["gender"],
		CaseType:  fields["case_type"],
		Notes:     fields["notes"],
		CreatedAt: fields["id"],
	}
}

func DecodeCases(rows [][]string) []*CaseRecord {
	out := make([]*CaseRecord, 0, len(rows))
	for _, row := range rows {
		if c := DecodeCase(row); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func DecodeRawCases(rows [][]string) []*CaseRecord {
	out := make([]*CaseRecord, 0, len(rows))
	for _, row := range rows {
		if c := DecodeRawCase(row); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Row encodes under the current schema.
func (c *CaseRecord) Row() []string {
	return []string{
		c.ID,
		c.Date,
		c.Branch,
		c.Gender,
		c.CaseType,
		c.Description,
		c.Team,
		c.Notes,
		c.CreatedAt,
		c.Status,
	}
}
