package issues

import "strings"

// PriorityColor returns the hex display color for a priority.
func PriorityColor(p Priority) string {
	switch p {
	case Urgent:
		return "#EF4444"
	case High:
		return "#F59E0B"
	case Medium:
		return "#3B82F6"
	case Low:
		return "#10B981"
	default:
		return "#6B7280"
	}
}

// StatusColor returns the hex display color for a workflow state name.
// Norwegian names are matched too since some workspaces use them.
func StatusColor(stateName string) string {
	switch strings.ToLower(strings.TrimSpace(stateName)) {
	case "todo", "å gjøre":
		return "#3B82F6"
	case "in progress", "under arbeid":
		return "#8B5CF6"
	case "done", "ferdig":
		return "#10B981"
	case "canceled", "cancelled", "kansellert":
		return "#EF4444"
	case "duplicate", "duplikat":
		return "#F59E0B"
	default:
		return "#6B7280"
	}
}
