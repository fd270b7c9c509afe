package cli

import (
	"fmt"
	"strings"

	"github.com/roeyazroel/linear-board/internal/board"
	"github.com/roeyazroel/linear-board/internal/issues"
)

func unknown(kind, value string) error {
	return &issues.Error{
		Category: issues.Validation,
		Op:       "resolve " + kind,
		Message:  fmt.Sprintf("unknown %s %q", kind, value),
	}
}

// resolveStates maps state names or ids to ids.
func resolveStates(tc issues.TeamContext, values []string) ([]string, error) {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		id := ""
		for _, s := range tc.States {
			if s.ID == v || strings.EqualFold(s.Name, strings.TrimSpace(v)) {
				id = s.ID
				break
			}
		}
		if id == "" {
			return nil, unknown("state", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveLabels maps label names or ids to ids.
func resolveLabels(tc issues.TeamContext, values []string) ([]string, error) {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		id := ""
		for _, l := range tc.Labels {
			if l.ID == v || strings.EqualFold(l.Name, strings.TrimSpace(v)) {
				id = l.ID
				break
			}
		}
		if id == "" {
			return nil, unknown("label", v)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// resolveAssignee maps "me", "none", a member name, display name, email or
// id to a member id. "none" resolves to board.Unassigned.
func resolveAssignee(tc issues.TeamContext, value string) (string, error) {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "none", "unassigned":
		return board.Unassigned, nil
	case "me":
		if m, ok := tc.Me(); ok {
			return m.ID, nil
		}
		return "", unknown("assignee", value)
	}
	for _, m := range tc.Members {
		if m.ID == v || strings.EqualFold(m.Name, v) || strings.EqualFold(m.DisplayName, v) ||
			(m.Email != "" && strings.EqualFold(m.Email, v)) {
			return m.ID, nil
		}
	}
	return "", unknown("assignee", value)
}

func resolveAssignees(tc issues.TeamContext, values []string) ([]string, error) {
	ids := make([]string, 0, len(values))
	for _, v := range values {
		id, err := resolveAssignee(tc, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
