package models

// EntityType keys are the public names used in routes, feature flags and
// log fields.
type EntityType string

const (
	EntityCases        EntityType = "cases"
	EntityCasesRaw     EntityType = "cases_raw"
	EntityDonations    EntityType = "donations"
	EntityExpenses     EntityType = "expenses"
	EntityFinancialRaw EntityType = "financial_raw"
	EntityAssets       EntityType = "assets"
	EntityMedicalTeam  EntityType = "medical_team"
	EntityInventory    EntityType = "inventory"
)

// StatusDeleted is the soft-delete sentinel. Exact, case-sensitive match;
// any other status value (including empty) means active.
const StatusDeleted = "Deleted"

// Binding ties an entity to its physical location in the spreadsheet.
// The first sheet row is the header; data starts at row 2.
type Binding struct {
	Entity     EntityType
	Sheet      string
	DataRange  string // full data block, open-ended ("Cases!A2:J")
	IDColRange string // id column only, for locate-by-scan
	IDCol      int    // 0-based data column holding the id
	StatusCol  int    // 0-based data column of the status flag, -1 if none
	Width      int    // column count of the current schema version
	HeaderRows int
}

var bindings = map[EntityType]Binding{
	EntityCases: {
		Entity: EntityCases, Sheet: "Cases",
		DataRange: "Cases!A2:J", IDColRange: "Cases!A2:A",
		IDCol: 0, StatusCol: 9, Width: 10, HeaderRows: 1,
	},
	EntityCasesRaw: {
		Entity: EntityCasesRaw, Sheet: "Cases_Raw_Data",
		DataRange: "Cases_Raw_Data!A2:H", IDColRange: "Cases_Raw_Data!A2:A",
		IDCol: 0, StatusCol: -1, Width: 8, HeaderRows: 1,
	},
	EntityDonations: {
		Entity: EntityDonations, Sheet: "Donations",
		DataRange: "Donations!A2:Q", IDColRange: "Donations!A2:A",
		IDCol: 0, StatusCol: 16, Width: 17, HeaderRows: 1,
	},
	EntityExpenses: {
		Entity: EntityExpenses, Sheet: "Expenses",
		DataRange: "Expenses!A2:Q", IDColRange: "Expenses!A2:A",
		IDCol: 0, StatusCol: 16, Width: 17, HeaderRows: 1,
	},
	EntityFinancialRaw: {
		Entity: EntityFinancialRaw, Sheet: "Financial_Raw_Data",
		DataRange: "Financial_Raw_Data!A2:R", IDColRange: "Financial_Raw_Data!A2:A",
		IDCol: 0, StatusCol: -1, Width: 18, HeaderRows: 1,
	},
	EntityAssets: {
		Entity: EntityAssets, Sheet: "Assets",
		DataRange: "Assets!A2:O", IDColRange: "Assets!A2:A",
		IDCol: 0, StatusCol: 14, Width: 15, HeaderRows: 1,
	},
	EntityMedicalTeam: {
		Entity: EntityMedicalTeam, Sheet: "Medical_Team",
		DataRange: "Medical_Team!A2:O", IDColRange: "Medical_Team!A2:A",
		IDCol: 0, StatusCol: 14, Width: 15, HeaderRows: 1,
	},
	// Inventory is keyed by branch name, one row per branch, no id column
	// and no soft delete.
	EntityInventory: {
		Entity: EntityInventory, Sheet: "Inventory",
		DataRange: "Inventory!A2:G", IDColRange: "Inventory!A2:A",
		IDCol: 0, StatusCol: -1, Width: 7, HeaderRows: 1,
	},
}

func BindingFor(entity EntityType) (Binding, bool) {
	b, ok := bindings[entity]
	return b, ok
}

// AllEntities lists every bound entity in a stable order.
func AllEntities() []EntityType {
	return []EntityType{
		EntityCases, EntityCasesRaw,
		EntityDonations, EntityExpenses, EntityFinancialRaw,
		EntityAssets, EntityMedicalTeam, EntityInventory,
	}
}
