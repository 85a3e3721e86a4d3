package models

import (
	"errors"

	"bitbucket.org/alrahmateam/medaid_backend/config"
)

// Schema is one revision of an entity's positional layout. Column
// positions have drifted between revisions of the sheet with no migration
// of old rows, so readers must cope with every registered version while
// writers always emit the newest one.
type Schema struct {
	Entity  EntityType
	Version int
	Fields  []string
}

func (s Schema) Width() int { return len(s.Fields) }

// Registered versions, ascending. Donation v1 predates the derived
// month/year columns; team v1 predates the photo column; v2 rows predate
// the soft-delete status column appended on the right.
var schemas = map[EntityType][]Schema{
	EntityCases: {
		{EntityCases, 1, []string{"id", "date", "branch", "gender", "case_type", "description", "team", "notes", "created_at"}},
		{EntityCases, 2, []string{"id", "date", "branch", "gender", "case_type", "description", "team", "notes", "created_at", "status"}},
	},
	EntityCasesRaw: {
		{EntityCasesRaw, 1, []string{"id", "date", "month", "year", "branch", "gender", "case_type", "notes"}},
	},
	EntityDonations: {
		{EntityDonations, 1, []string{"id", "date", "branch", "party_name", "kind", "method", "amount", "currency", "in_kind_type", "quantity", "usage_purpose", "recipient", "notes", "created_at", "status"}},
		{EntityDonations, 2, []string{"id", "date", "month", "year", "branch", "party_name", "kind", "method", "amount", "currency", "in_kind_type", "quantity", "usage_purpose", "recipient", "notes", "created_at", "status"}},
	},
	// Financial_Raw_Data is an untouched form export: the donation layout
	// plus the form's ledger selector and submitter columns, no status.
	// Readers pass rows through positionally; the layout exists for sheet
	// provisioning.
	EntityFinancialRaw: {
		{EntityFinancialRaw, 1, []string{"id", "date", "month", "year", "branch", "ledger", "party_name", "kind", "method", "amount", "currency", "in_kind_type", "quantity", "usage_purpose", "recipient", "notes", "submitter", "created_at"}},
	},
	EntityAssets: {
		{EntityAssets, 1, []string{"id", "branch", "asset_type", "asset_category", "asset_name", "description", "quantity", "condition", "vehicle_plate", "year_built", "location", "added_at", "updated_at", "notes"}},
		{EntityAssets, 2, []string{"id", "branch", "asset_type", "asset_category", "asset_name", "description", "quantity", "condition", "vehicle_plate", "year_built", "location", "added_at", "updated_at", "notes", "status"}},
	},
	EntityMedicalTeam: {
		{EntityMedicalTeam, 1, []string{"id", "full_name", "branch", "role", "blood_type", "birth_date", "marital_status", "num_children", "education_level", "received_uniform", "phone", "received_card", "card_number"}},
		{EntityMedicalTeam, 2, []string{"id", "full_name", "branch", "role", "blood_type", "birth_date", "marital_status", "num_children", "education_level", "received_uniform", "phone", "received_card", "card_number", "image_ref"}},
		{EntityMedicalTeam, 3, []string{"id", "full_name", "branch", "role", "blood_type", "birth_date", "marital_status", "num_children", "education_level", "received_uniform", "phone", "received_card", "card_number", "image_ref", "status"}},
	},
	EntityInventory: {
		{EntityInventory, 1, []string{"branch", "wheelchairs", "walkers", "air_mattresses", "patient_beds", "oxygen_machines", "crutches"}},
	},
}

// Expenses share the donation layout; the physical sheet is the ledger.
func init() {
	expense := make([]Schema, 0, len(schemas[EntityDonations]))
	for _, s := range schemas[EntityDonations] {
		expense = append(expense, Schema{EntityExpenses, s.Version, s.Fields})
	}
	schemas[EntityExpenses] = expense
}

var errNoSchema = errors.New("no schema registered for entity")

// CurrentSchema is the write-side layout of an entity.
func CurrentSchema(entity EntityType) Schema {
	versions := schemas[entity]
	if len(versions) == 0 {
		panic(errNoSchema.Error() + ": " + string(entity))
	}
	return versions[len(versions)-1]
}

// DetectSchema picks the layout a stored row was written under: the
// highest version whose field count does not exceed the row's width.
// Rows shorter than every version decode under the oldest one, padded.
func DetectSchema(entity EntityType, width int) Schema {
	versions := schemas[entity]
	if len(versions) == 0 {
		panic(errNoSchema.Error() + ": " + string(entity))
	}
	picked := versions[0]
	for _, s := range versions {
		if s.Width() <= width {
			picked = s
		}
	}
	return picked
}

// padRow zero-pads a short row up to width. Padding is a defined
// leniency, not an error, but it can hide genuine data gaps, so every
// occurrence is logged with enough detail to audit later.
func padRow(entity EntityType, row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	id := ""
	if len(row) > 0 {
		id = row[0]
	}
	config.LogInfo(config.GetLogger(), "models", "padRow", "padding short row", map[string]any{
		"entity": entity,
		"id":     id,
		"have":   len(row),
		"want":   width,
	})
	padded := make([]string, width)
	copy(padded, row)
	return padded
}
