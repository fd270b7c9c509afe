package board

import (
	"fmt"
	"strings"

	"github.com/roeyazroel/linear-board/internal/issues"
)

// Unassigned is the assignee filter value that selects issues without an
// assignee.
const Unassigned = "__unassigned__"

// Dimension is one multi-select filter axis.
type Dimension int

const (
	DimState Dimension = iota
	DimPriority
	DimLabel
	DimAssignee
)

func (d Dimension) String() string {
	switch d {
	case DimState:
		return "state"
	case DimPriority:
		return "priority"
	case DimLabel:
		return "label"
	case DimAssignee:
		return "assignee"
	default:
		return "unknown"
	}
}

// ParseDimension accepts the names returned by Dimension.String.
func ParseDimension(s string) (Dimension, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "state", "status":
		return DimState, true
	case "priority":
		return DimPriority, true
	case "label", "labels":
		return DimLabel, true
	case "assignee":
		return DimAssignee, true
	}
	return 0, false
}

// Filter is the current selection. Empty sets do not constrain.
type Filter struct {
	StateIDs    []string
	Priorities  []issues.Priority
	LabelIDs    []string
	AssigneeIDs []string
	MineOnly    bool
}

// Active reports whether any dimension constrains the projection.
func (f Filter) Active() bool {
	return len(f.StateIDs) > 0 || len(f.Priorities) > 0 || len(f.LabelIDs) > 0 ||
		len(f.AssigneeIDs) > 0 || f.MineOnly
}

func (f Filter) clone() Filter {
	return Filter{
		StateIDs:    append([]string(nil), f.StateIDs...),
		Priorities:  append([]issues.Priority(nil), f.Priorities...),
		LabelIDs:    append([]string(nil), f.LabelIDs...),
		AssigneeIDs: append([]string(nil), f.AssigneeIDs...),
		MineOnly:    f.MineOnly,
	}
}

// Values returns the selection of one dimension as strings. Priorities are
// returned as their wire values.
func (f Filter) Values(d Dimension) []string {
	switch d {
	case DimState:
		return append([]string(nil), f.StateIDs...)
	case DimPriority:
		out := make([]string, 0, len(f.Priorities))
		for _, p := range f.Priorities {
			out = append(out, fmt.Sprintf("%d", int(p)))
		}
		return out
	case DimLabel:
		return append([]string(nil), f.LabelIDs...)
	case DimAssignee:
		return append([]string(nil), f.AssigneeIDs...)
	}
	return nil
}

// with returns f with dimension d replaced by values, deduplicated in input
// order.
func (f Filter) with(d Dimension, values []string) (Filter, error) {
	out := f.clone()
	switch d {
	case DimState:
		out.StateIDs = dedupe(values)
	case DimLabel:
		out.LabelIDs = dedupe(values)
	case DimAssignee:
		out.AssigneeIDs = dedupe(values)
	case DimPriority:
		out.Priorities = out.Priorities[:0]
		seen := make(map[issues.Priority]struct{}, len(values))
		for _, v := range values {
			p, ok := issues.ParsePriority(v)
			if !ok {
				return f, &issues.Error{
					Category: issues.Validation,
					Op:       "set filter",
					Message:  fmt.Sprintf("unknown priority %q", v),
				}
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out.Priorities = append(out.Priorities, p)
		}
	default:
		return f, &issues.Error{Category: issues.Validation, Op: "set filter", Message: "unknown filter dimension"}
	}
	return out, nil
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
