package board

import (
	"sort"
	"strings"

	"github.com/roeyazroel/linear-board/internal/issues"
)

type stringSet map[string]struct{}

func toSet(values []string) stringSet {
	if len(values) == 0 {
		return nil
	}
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// project filters records by every active dimension and sorts the result by
// priority rank, highest first. Equal ranks keep their input order.
func project(records []issues.Record, f Filter, authorTag string) []issues.Record {
	states := toSet(f.StateIDs)
	labels := toSet(f.LabelIDs)
	assignees := toSet(f.AssigneeIDs)
	var priorities map[issues.Priority]struct{}
	if len(f.Priorities) > 0 {
		priorities = make(map[issues.Priority]struct{}, len(f.Priorities))
		for _, p := range f.Priorities {
			priorities[p] = struct{}{}
		}
	}

	out := make([]issues.Record, 0, len(records))
	for _, r := range records {
		if states != nil && !states.has(r.StateID) {
			continue
		}
		if priorities != nil {
			if _, ok := priorities[r.Priority]; !ok {
				continue
			}
		}
		if labels != nil && !anyLabel(r, labels) {
			continue
		}
		if assignees != nil && !matchAssignee(r, assignees) {
			continue
		}
		if f.MineOnly && !strings.HasPrefix(r.Title, authorTag) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

func anyLabel(r issues.Record, labels stringSet) bool {
	for _, l := range r.Labels {
		if labels.has(l.ID) {
			return true
		}
	}
	return false
}

func matchAssignee(r issues.Record, assignees stringSet) bool {
	if r.AssigneeID == "" {
		return assignees.has(Unassigned)
	}
	return assignees.has(r.AssigneeID)
}
