package models

// AssetTypeLoaned marks borrowed-equipment rows inside the Assets sheet.
// Those rows overload two slots: the category column carries the borrow
// date and the description column carries the recipient. The convention
// is kept on disk for compatibility; BorrowedView exposes proper names.
const AssetTypeLoaned = "اعاره للاصول المعاره"

type AssetRecord struct {
	ID            string `json:"id"`
	Branch        string `json:"branch"`
	AssetType     string `json:"asset_type"`
	AssetCategory string `json:"asset_category"`
	AssetName     string `json:"asset_name"`
	Description   string `json:"description"`
	Quantity      string `json:"quantity"`
	Condition     string `json:"condition"`
	VehiclePlate  string `json:"vehicle_plate"`
	YearBuilt     string `json:"year_built"`
	Location      string `json:"location"`
	AddedAt       string `json:"added_at"`
	UpdatedAt     string `json:"updated_at"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

func (a *AssetRecord) RecordID() string { return a.ID }
func (a *AssetRecord) IsDeleted() bool  { return a.Status == StatusDeleted }

// SortDate: assets order by creation; loaned rows by their borrow date,
// which lives in the overloaded category slot.
func (a *AssetRecord) SortDate() string {
	if a.IsLoaned() {
		return a.AssetCategory
	}
	return a.AddedAt
}

func (a *AssetRecord) IsLoaned() bool { return a.AssetType == AssetTypeLoaned }

func DecodeAsset(row []string) *AssetRecord {
	fields := decodeTo(EntityAssets, row, DetectSchema(EntityAssets, len(row)))
	if fields["id"] == "" {
		return nil
	}
	return &AssetRecord{
		ID:            fields["id"],
		Branch:        fields["branch"],
		AssetType:     fields["asset_type"],
		AssetCategory: fields["asset_category"],
		AssetName:     fields["asset_name"],
		Description:   fields["description"],
		Quantity:      fields["quantity"],
		Condition:     fields["condition"],
		VehiclePlate:  fields["vehicle_plate"],
		YearBuilt:     fields["year_built"],
		Location:      fields["location"],
		AddedAt:       fields["added_at"],
		UpdatedAt:     fields["updated_at"],
		Notes:         fields["notes"],
		Status:        fields["status"],
	}
}

func DecodeAssets(rows [][]string) []*AssetRecord {
	out := make([]*AssetRecord, 0, len(rows))
	for _, row := range rows {
		if a := DecodeAsset(row); a != nil {
			out = append(out, a)
		}
	}
	return out
}

func (a *AssetRecord) Row() []string {
	return []string{
		a.ID,
		a.Branch,
		a.AssetType,
		a.AssetCategory,
		a.AssetName,
		a.Description,
		a.Quantity,
		a.Condition,
		a.VehiclePlate,
		a.YearBuilt,
		a.Location,
		a.AddedAt,
		a.UpdatedAt,
		a.Notes,
		a.Status,
	}
}

// BorrowedAsset is the de-overloaded view of a loaned row.
type BorrowedAsset struct {
	ID         string `json:"id"`
	Branch     string `json:"branch"`
	AssetName  string `json:"asset_name"`
	Quantity   string `json:"quantity"`
	Recipient  string `json:"recipient"`
	BorrowDate string `json:"borrow_date"`
	Notes      string `json:"notes"`
}

func (a *AssetRecord) BorrowedView() *BorrowedAsset {
	return &BorrowedAsset{
		ID:         a.ID,
		Branch:     a.Branch,
		AssetName:  a.AssetName,
		Quantity:   a.Quantity,
		Recipient:  a.Description,
		BorrowDate: a.AssetCategory,
		Notes:      a.Notes,
	}
}

// NewBorrowedAsset builds the storage record for a loan, writing the
// overloaded slots the way every reader of this sheet expects them.
func NewBorrowedAsset(id, branch, assetName, quantity, recipient, borrowDate, notes, now string) *AssetRecord {
	return &AssetRecord{
		ID:            id,
		Branch:        branch,
		AssetType:     AssetTypeLoaned,
		AssetCategory: borrowDate,
		AssetName:     assetName,
		Description:   recipient,
		Quantity:      quantity,
		Notes:         notes,
		AddedAt:       now,
		UpdatedAt:     now,
	}
}
