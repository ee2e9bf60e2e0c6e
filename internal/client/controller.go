package client

import (
	"context"
	"time"

	"apptrack/internal/tracker"
)

// FilterAll disables status filtering.
const FilterAll = "All"

// noticeTTL is how long a notification stays visible.
const noticeTTL = 3 * time.Second

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is an ephemeral notification shown to the user.
type Notice struct {
	Text      string
	Kind      NoticeKind
	ExpiresAt time.Time
}

// Form is the draft record being composed.
type Form struct {
	Company  string
	Role     string
	Type     tracker.Type
	Status   tracker.Status
	Location string
	Salary   string
	Link     string
	Notes    string
}

// NewForm returns an empty draft with the schema defaults.
func NewForm() Form {
	return Form{Type: tracker.TypeJob, Status: tracker.StatusSaved}
}

// FormFromRecord pre-fills a draft from an existing record for editing.
func FormFromRecord(r tracker.Record) Form {
	return Form{
		Company:  r.Company,
		Role:     r.Role,
		Type:     r.Type,
		Status:   r.Status,
		Location: r.Location,
		Salary:   r.Salary,
		Link:     r.Link,
		Notes:    r.Notes,
	}
}

// Patch converts the draft into the partial record the API accepts. Every
// field is sent; the form always carries the full draft.
func (f Form) Patch() tracker.Patch {
	return tracker.Patch{
		Company:  &f.Company,
		Role:     &f.Role,
		Type:     &f.Type,
		Status:   &f.Status,
		Location: &f.Location,
		Salary:   &f.Salary,
		Link:     &f.Link,
		Notes:    &f.Notes,
	}
}

// State is the client's view of the world: the last known server list plus
// the transient filter, draft, and notification state. Actions take a State
// and return the next one; nothing here is shared or ambient.
type State struct {
	Records     []tracker.Record
	Filter      string
	Form        Form
	EditID      string
	FormVisible bool
	Busy        bool
	Connected   bool
	Notice      *Notice
}

// NewState returns the startup state: empty list, no filter, hidden form.
func NewState() State {
	return State{
		Filter: FilterAll,
		Form:   NewForm(),
	}
}

// Visible applies the active status filter to the record list.
func (s State) Visible() []tracker.Record {
	if s.Filter == FilterAll {
		return s.Records
	}
	var out []tracker.Record
	for _, r := range s.Records {
		if string(r.Status) == s.Filter {
			out = append(out, r)
		}
	}
	return out
}

// Stats are the derived counters shown above the list.
type Stats struct {
	Total      int
	Active     int
	Interviews int
	Offers     int
}

// Stats computes the counters from the full (unfiltered) list.
func (s State) Stats() Stats {
	var st Stats
	st.Total = len(s.Records)
	for _, r := range s.Records {
		if r.Active() {
			st.Active++
		}
		switch r.Status {
		case tracker.StatusInterview:
			st.Interviews++
		case tracker.StatusOffer:
			st.Offers++
		}
	}
	return st
}

// ClearExpiredNotice drops the notification once its deadline passes.
func (s State) ClearExpiredNotice(now time.Time) State {
	if s.Notice != nil && now.After(s.Notice.ExpiresAt) {
		s.Notice = nil
	}
	return s
}

// Controller reconciles server responses into client state. Its methods are
// the reducers of the update cycle: State in, next State out.
type Controller struct {
	API *Client

	// Now is the clock used for notice deadlines; tests override it.
	Now func() time.Time
}

// NewController returns a controller over the given API client.
func NewController(api *Client) *Controller {
	return &Controller{API: api, Now: time.Now}
}

func (c *Controller) notice(s State, text string, kind NoticeKind) State {
	s.Notice = &Notice{Text: text, Kind: kind, ExpiresAt: c.Now().Add(noticeTTL)}
	return s
}

// Notify raises an ephemeral notification on the state. The UI uses it for
// events the controller does not own, like a finished export.
func (c *Controller) Notify(s State, text string, kind NoticeKind) State {
	return c.notice(s, text, kind)
}

// Refresh replaces the local list wholesale with the server's. On failure the
// prior list is left untouched and a connectivity notice is raised.
func (c *Controller) Refresh(ctx context.Context, s State) State {
	records, err := c.API.List(ctx)
	if err != nil {
		s.Connected = false
		return c.notice(s, "Could not connect to server", NoticeError)
	}
	s.Records = records
	s.Connected = true
	return s
}

// StartCompose opens the form with an empty draft.
func (c *Controller) StartCompose(s State) State {
	s.Form = NewForm()
	s.EditID = ""
	s.FormVisible = true
	return s
}

// StartEdit opens the form pre-filled from the record with the given id.
// Unknown ids leave the state unchanged.
func (c *Controller) StartEdit(s State, id string) State {
	for _, r := range s.Records {
		if r.ID == id {
			s.Form = FormFromRecord(r)
			s.EditID = id
			s.FormVisible = true
			return s
		}
	}
	return s
}

// Cancel closes the form and discards the draft.
func (c *Controller) Cancel(s State) State {
	return resetForm(s)
}

// SetFilter switches the client-side status filter.
func (c *Controller) SetFilter(s State, filter string) State {
	s.Filter = filter
	return s
}

// Submit sends the draft to the server: an update when an edit target is set,
// a create otherwise. The form closes and the draft is discarded on both
// success and failure; a failed submit cannot be recovered. Drafts missing a
// required field are kept open untouched.
func (c *Controller) Submit(ctx context.Context, s State) State {
	if s.Form.Company == "" || s.Form.Role == "" {
		return s
	}

	patch := s.Form.Patch()
	if s.EditID != "" {
		updated, err := c.API.Update(ctx, s.EditID, patch)
		if err != nil {
			return c.notice(resetForm(s), "Failed to save", NoticeError)
		}
		// Replace in a fresh slice so earlier snapshots stay untouched; the
		// list keeps its current order until the next refresh re-sorts it.
		records := make([]tracker.Record, len(s.Records))
		copy(records, s.Records)
		for i, r := range records {
			if r.ID == updated.ID {
				records[i] = updated
				break
			}
		}
		s.Records = records
		return c.notice(resetForm(s), "Application updated", NoticeSuccess)
	}

	created, err := c.API.Create(ctx, patch)
	if err != nil {
		return c.notice(resetForm(s), "Failed to save", NoticeError)
	}
	s.Records = append([]tracker.Record{created}, s.Records...)
	return c.notice(resetForm(s), "Application added", NoticeSuccess)
}

// Delete removes the record on the server and, on success, drops it from the
// local list by identifier.
func (c *Controller) Delete(ctx context.Context, s State, id string) State {
	if err := c.API.Delete(ctx, id); err != nil {
		return c.notice(s, "Failed to delete", NoticeError)
	}
	kept := s.Records[:0:0]
	for _, r := range s.Records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.Records = kept
	return c.notice(s, "Application deleted", NoticeSuccess)
}

func resetForm(s State) State {
	s.Form = NewForm()
	s.EditID = ""
	s.FormVisible = false
	s.Busy = false
	return s
}
