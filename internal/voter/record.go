package voter

import "strconv"

// Record is one person from a voter roll, the fixed 8-field schema every
// structured output file carries.
type Record struct {
	Name       string `json:"name"`
	NID        string `json:"nid"`
	Father     string `json:"father"`
	Mother     string `json:"mother"`
	DOB        string `json:"dob"`
	Profession string `json:"profession"`
	Address    string `json:"address"`
	Page       int    `json:"page"`
}

// Header returns the CSV column order for structured output.
func Header() []string {
	return []string{"Name", "NID", "Father", "Mother", "DOB", "Profession", "Address", "Page"}
}

// Fields returns the record's values in Header order. Empty fields stay as
// empty strings so column alignment holds across all rows.
func (r Record) Fields() []string {
	return []string{
		r.Name,
		r.NID,
		r.Father,
		r.Mother,
		r.DOB,
		r.Profession,
		r.Address,
		strconv.Itoa(r.Page),
	}
}
