package tracker

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []Status{"", "Ghosted", "saved"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestValidType(t *testing.T) {
	if !ValidType(TypeJob) || !ValidType(TypeInternship) {
		t.Error("enumerated types rejected")
	}
	if ValidType("Contract") {
		t.Error(`ValidType("Contract") = true`)
	}
}

func TestActive(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusSaved, true},
		{StatusApplied, true},
		{StatusPhoneScreen, true},
		{StatusInterview, true},
		{StatusOffer, false},
		{StatusRejected, false},
		{StatusWithdrawn, false},
	}
	for _, tt := range tests {
		if got := (Record{Status: tt.status}).Active(); got != tt.want {
			t.Errorf("Active() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestPatchApply(t *testing.T) {
	rec := Record{
		ID:      "rec-1",
		Company: "Acme",
		Role:    "Engineer",
		Type:    TypeJob,
		Status:  StatusSaved,
		Notes:   "original",
	}

	status := StatusOffer
	empty := ""
	Patch{Status: &status, Notes: &empty}.Apply(&rec)

	if rec.Status != StatusOffer {
		t.Errorf("Status = %q, want Offer", rec.Status)
	}
	if rec.Notes != "" {
		t.Errorf("Notes = %q, want cleared by explicit empty string", rec.Notes)
	}
	if rec.Company != "Acme" || rec.Role != "Engineer" || rec.ID != "rec-1" {
		t.Errorf("fields without patch values changed: %+v", rec)
	}
}
