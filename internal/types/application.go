package types

// ApplyDetail is the application metadata block of a cv_data file, filled in
// by the browser extension or by hand once the application was sent.
type ApplyDetail struct {
	Role          Text `json:"role"`
	Company       Text `json:"company"`
	Location      Text `json:"location"`
	JobType       Text `json:"jobType"`
	Salary        Text `json:"salary"`
	Link          Text `json:"link"`
	Address       Text `json:"address"`
	Status        Text `json:"status"`
	ApplyDateTime Text `json:"applyDateTime"`
}

// IsEmpty reports whether every field is blank.
func (a *ApplyDetail) IsEmpty() bool {
	if a == nil {
		return true
	}
	for _, v := range []Text{
		a.Role, a.Company, a.Location, a.JobType, a.Salary,
		a.ApplyDateTime, a.Status, a.Link, a.Address,
	} {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

// ApplicationRecord is the subset of a cv_data file the ledger reads.
type ApplicationRecord struct {
	ApplyDetail *ApplyDetail `json:"applyDetail,omitempty"`
}
