package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-day format used for plan dates
const DateLayout = "2006-01-02"

// PlanEntry is one scheduled recipe occurrence
type PlanEntry struct {
	ID       uuid.UUID
	RecipeID uuid.UUID
	IsDone   bool
}

// Plan groups the entries scheduled for one calendar day
type Plan struct {
	ID      uuid.UUID
	Owner   string
	Date    time.Time
	IsDone  bool
	Entries []PlanEntry
}

// NewPlan creates a plan for the given day, assigning ids to new entries
func NewPlan(owner string, date time.Time, entries []PlanEntry) (*Plan, error) {
	p := &Plan{
		ID:      uuid.New(),
		Owner:   owner,
		Date:    TruncateDay(date),
		Entries: entries,
	}
	p.AssignEntryIDs()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the plan invariants
func (p *Plan) Validate() error {
	if p.Owner == "" {
		return ErrOwnerRequired
	}
	if p.Date.IsZero() {
		return ErrPlanDateRequired
	}
	seen := make(map[uuid.UUID]struct{}, len(p.Entries))
	for _, e := range p.Entries {
		if e.RecipeID == uuid.Nil {
			return ErrMissingRecipe
		}
		if e.ID == uuid.Nil {
			continue
		}
		if _, dup := seen[e.ID]; dup {
			return ErrDuplicateEntry
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// AssignEntryIDs gives an id to every entry that lacks one
func (p *Plan) AssignEntryIDs() {
	for i := range p.Entries {
		if p.Entries[i].ID == uuid.Nil {
			p.Entries[i].ID = uuid.New()
		}
	}
}

// Entry returns the entry with the given id
func (p *Plan) Entry(id uuid.UUID) (PlanEntry, bool) {
	for _, e := range p.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return PlanEntry{}, false
}

// HasPending reports whether any entry still has to be cooked.
// An empty plan counts as pending.
func (p *Plan) HasPending() bool {
	if len(p.Entries) == 0 {
		return true
	}
	for _, e := range p.Entries {
		if !e.IsDone {
			return true
		}
	}
	return false
}

// DateLabel formats the plan day
func (p *Plan) DateLabel() string {
	return p.Date.Format(DateLayout)
}

// TruncateDay strips the time of day, keeping the calendar date in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
