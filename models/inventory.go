package models

// InventoryRow is one branch's equipment counts. The sheet is keyed by
// branch name, one row per branch; counts stay strings at the boundary
// like every other numeric column.
type InventoryRow struct {
	Branch         string `json:"branch"`
	Wheelchairs    string `json:"wheelchairs"`
	Walkers        string `json:"walkers"`
	AirMattresses  string `json:"air_mattresses"`
	PatientBeds    string `json:"patient_beds"`
	OxygenMachines string `json:"oxygen_machines"`
	Crutches       string `json:"crutches"`
}

func (r *InventoryRow) RecordID() string { return r.Branch }
func (r *InventoryRow) SortDate() string { return "" }
func (r *InventoryRow) IsDeleted() bool  { return false }

func DecodeInventoryRow(row []string) *InventoryRow {
	fields := decodeTo(EntityInventory, row, DetectSchema(EntityInventory, len(row)))
	if fields["branch"] == "" {
		return nil
	}
	return &InventoryRow{
		Branch:         fields["branch"],
		Wheelchairs:    fields["wheelchairs"],
		Walkers:        fields["walkers"],
		AirMattresses:  fields["air_mattresses"],
		PatientBeds:    fields["patient_beds"],
		OxygenMachines: fields["oxygen_machines"],
		Crutches:       fields["crutches"],
	}
}

func DecodeInventoryRows(rows [][]string) []*InventoryRow {
	out := make([]*InventoryRow, 0, len(rows))
	for _, row := range rows {
		if r := DecodeInventoryRow(row); r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (r *InventoryRow) Row() []string {
	return []string{
		r.Branch,
		r.Wheelchairs,
		r.Walkers,
		r.AirMattresses,
		r.PatientBeds,
		r.OxygenMachines,
		r.Crutches,
	}
}
