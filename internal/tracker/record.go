// Package tracker defines the application record schema shared by the
// store, the HTTP API, the client, and the export transform.
package tracker

import "time"

// Status is the pipeline stage of an application.
type Status string

const (
	StatusSaved       Status = "Saved"
	StatusApplied     Status = "Applied"
	StatusPhoneScreen Status = "Phone Screen"
	StatusInterview   Status = "Interview"
	StatusOffer       Status = "Offer"
	StatusRejected    Status = "Rejected"
	StatusWithdrawn   Status = "Withdrawn"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{
	StatusSaved,
	StatusApplied,
	StatusPhoneScreen,
	StatusInterview,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
}

// Type distinguishes full positions from internships.
type Type string

const (
	TypeJob        Type = "Job"
	TypeInternship Type = "Internship"
)

// Types lists every valid application type.
var Types = []Type{TypeJob, TypeInternship}

// Record is one tracked job or internship application.
type Record struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Salary    string    `json:"salary,omitempty"`
	Link      string    `json:"link,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ValidType reports whether t is one of the enumerated types.
func ValidType(t Type) bool {
	for _, v := range Types {
		if t == v {
			return true
		}
	}
	return false
}

// Active reports whether the application is still in play: anything that has
// not ended in an offer, a rejection, or a withdrawal.
func (r Record) Active() bool {
	switch r.Status {
	case StatusOffer, StatusRejected, StatusWithdrawn:
		return false
	}
	return true
}

// Patch is a partial record as accepted by the create and update operations.
// Nil fields are left untouched on merge.
type Patch struct {
	Company  *string `json:"company"`
	Role     *string `json:"role"`
	Type     *Type   `json:"type"`
	Status   *Status `json:"status"`
	Location *string `json:"location"`
	Salary   *string `json:"salary"`
	Link     *string `json:"link"`
	Notes    *string `json:"notes"`
}

// Apply merges the patch's non-nil fields into r. Timestamps and the
// identifier are never touched here; the store owns those.
func (p Patch) Apply(r *Record) {
	if p.Company != nil {
		r.Company = *p.Company
	}
	if p.Role != nil {
		r.Role = *p.Role
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Salary != nil {
		r.Salary = *p.Salary
	}
	if p.Link != nil {
		r.Link = *p.Link
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
