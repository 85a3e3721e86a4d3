package models

// TeamMember is a medical-team profile. The row grew twice (photo column,
// then status); DetectSchema handles the 13/14/15-column generations.
type TeamMember struct {
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Branch          string `json:"branch"`
	Role            string `json:"role"`
	BloodType       string `json:"blood_type"`
	BirthDate       string `json:"birth_date"`
	MaritalStatus   string `json:"marital_status"`
	NumChildren     string `json:"num_children"`
	EducationLevel  string `json:"education_level"`
	ReceivedUniform string `json:"received_uniform"`
	Phone           string `json:"phone"`
	ReceivedCard    string `json:"received_card"`
	CardNumber      string `json:"card_number"`
	ImageRef        string `json:"image_ref"`
	Status          string `json:"status"`
}

func (m *TeamMember) RecordID() string { return m.ID }
func (m *TeamMember) IsDeleted() bool  { return m.Status == StatusDeleted }

// Profiles have no user-facing event date; the id token is the creation
// time, so ordering falls through to the id tie-break.
func (m *TeamMember) SortDate() string { return "" }

func DecodeTeamMember(row []string) *TeamMember {
	fields := decodeTo(EntityMedicalTeam, row, DetectSchema(EntityMedicalTeam, len(row)))
	if fields["id"] == "" {
		return nil
	}
	return &TeamMember{
		ID:              fields["id"],
		FullName:        fields["full_name"],
		Branch:          fields["branch"],
		Role:            fields["role"],
		BloodType:       fields["blood_type"],
		BirthDate:       fields["birth_date"],
		MaritalStatus:   fields["marital_status"],
		NumChildren:     fields["num_children"],
		EducationLevel:  fields["education_level"],
		ReceivedUniform: fields["received_uniform"],
		Phone:           fields["phone"],
		ReceivedCard:    fields["received_card"],
		CardNumber:      fields["card_number"],
		ImageRef:        fields["image_ref"],
		Status:          fields["status"],
	}
}

func DecodeTeamMembers(rows [][]string) []*TeamMember {
	out := make([]*TeamMember, 0, len(rows))
	for _, row := range rows {
		if m := DecodeTeamMember(row); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func (m *TeamMember) Row() []string {
	return []string{
		m.ID,
		m.FullName,
		m.Branch,
		m.Role,
		m.BloodType,
		m.BirthDate,
		m.MaritalStatus,
		m.NumChildren,
		m.EducationLevel,
		m.ReceivedUniform,
		m.Phone,
		m.ReceivedCard,
		m.CardNumber,
		m.ImageRef,
		m.Status,
	}
}

// ImageRefCol is the data column patched by the photo upload path.
func ImageRefCol() int {
	for i, name := range CurrentSchema(EntityMedicalTeam).Fields {
		if name == "image_ref" {
			return i
		}
	}
	return -1
}
