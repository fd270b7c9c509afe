package board

import (
	"slices"

	"github.com/roeyazroel/linear-board/internal/issues"
)

// Snapshot is a read-only copy of the board state.
type Snapshot struct {
	Visible []issues.Record
	// Total counts all held records, filtered or not.
	Total   int
	Filter  Filter
	Edits   map[EditKey]EditStatus
	// Tokens holds the uuid of each tracked edit; a new edit of the same
	// field gets a new token.
	Tokens  map[EditKey]string
	Error   *issues.Error
	Loading bool
	Team    *issues.TeamContext
}

// Status returns the edit status of one issue field.
func (s Snapshot) Status(issueID string, f issues.Field) EditStatus {
	return s.Edits[EditKey{IssueID: issueID, Field: f}]
}

// Busy reports whether the field has an edit in flight.
func (s Snapshot) Busy(issueID string, f issues.Field) bool {
	return s.Status(issueID, f) == Pending
}

// AnyBusy reports whether any field of the issue has an edit in flight.
func (s Snapshot) AnyBusy(issueID string) bool {
	for k, st := range s.Edits {
		if k.IssueID == issueID && st == Pending {
			return true
		}
	}
	return false
}

// Find returns the visible record with id.
func (s Snapshot) Find(id string) (issues.Record, bool) {
	for _, r := range s.Visible {
		if r.ID == id {
			return r, true
		}
	}
	return issues.Record{}, false
}

// applyUpdate writes u into rec, resolving display names from the team
// context when available.
func applyUpdate(rec *issues.Record, u issues.Update, tc *issues.TeamContext) {
	switch u.Field {
	case issues.FieldState:
		rec.StateID = u.StateID
		rec.StateName = ""
		if tc != nil {
			if s, ok := tc.State(u.StateID); ok {
				rec.StateName = s.Name
			}
		}
	case issues.FieldPriority:
		rec.Priority = issues.NormalizePriority(int(u.Priority))
	case issues.FieldLabels:
		labels := make([]issues.Label, 0, len(u.LabelIDs))
		seen := make(map[string]struct{}, len(u.LabelIDs))
		for _, id := range u.LabelIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			labels = append(labels, resolveLabel(*rec, id, tc))
		}
		rec.Labels = labels
	case issues.FieldAssignee:
		rec.AssigneeID = u.AssigneeID
		rec.AssigneeName = ""
		if tc != nil && u.AssigneeID != "" {
			if m, ok := tc.Member(u.AssigneeID); ok {
				rec.AssigneeName = m.Name
			}
		}
	case issues.FieldContent:
		rec.Title = u.Title
		rec.Description = u.Description
	}
}

func resolveLabel(rec issues.Record, id string, tc *issues.TeamContext) issues.Label {
	for _, l := range rec.Labels {
		if l.ID == id {
			return l
		}
	}
	if tc != nil {
		if l, ok := tc.Label(id); ok {
			return l
		}
	}
	return issues.Label{ID: id}
}

// copyField copies the values of field f from src into dst.
func copyField(dst *issues.Record, src issues.Record, f issues.Field) {
	switch f {
	case issues.FieldState:
		dst.StateID, dst.StateName = src.StateID, src.StateName
	case issues.FieldPriority:
		dst.Priority = src.Priority
	case issues.FieldLabels:
		dst.Labels = slices.Clone(src.Labels)
	case issues.FieldAssignee:
		dst.AssigneeID, dst.AssigneeName = src.AssigneeID, src.AssigneeName
	case issues.FieldContent:
		dst.Title, dst.Description = src.Title, src.Description
	}
}

// fieldEqual compares field f of a and b. Label sets compare by id,
// ignoring order.
func fieldEqual(a, b issues.Record, f issues.Field) bool {
	switch f {
	case issues.FieldState:
		return a.StateID == b.StateID
	case issues.FieldPriority:
		return a.Priority == b.Priority
	case issues.FieldLabels:
		if len(a.Labels) != len(b.Labels) {
			return false
		}
		ids := make(map[string]struct{}, len(a.Labels))
		for _, l := range a.Labels {
			ids[l.ID] = struct{}{}
		}
		for _, l := range b.Labels {
			if _, ok := ids[l.ID]; !ok {
				return false
			}
		}
		return true
	case issues.FieldAssignee:
		return a.AssigneeID == b.AssigneeID
	case issues.FieldContent:
		return a.Title == b.Title && a.Description == b.Description
	}
	return false
}
