// Package issues holds the normalized issue model, the adapter over the Linear
// client and the error taxonomy surfaced to the board controller.
package issues

import "time"

// Priority is the Linear priority wire value.
type Priority int

const (
	NoPriority Priority = 0
	Urgent     Priority = 1
	High       Priority = 2
	Medium     Priority = 3
	Low        Priority = 4
)

// AllPriorities lists the priorities in display order.
var AllPriorities = []Priority{Urgent, High, Medium, Low, NoPriority}

// NormalizePriority maps values outside the known range to NoPriority.
func NormalizePriority(v int) Priority {
	if v < int(NoPriority) || v > int(Low) {
		return NoPriority
	}
	return Priority(v)
}

// Rank orders priorities for sorting: Urgent 4, High 3, Medium 2, Low 1,
// NoPriority 0.
func (p Priority) Rank() int {
	switch p {
	case Urgent:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

func (p Priority) String() string {
	switch p {
	case Urgent:
		return "Urgent"
	case High:
		return "High"
	case Medium:
		return "Medium"
	case Low:
		return "Low"
	default:
		return "No priority"
	}
}

// ParsePriority accepts a display name (case-insensitive, "none" for
// NoPriority) or a wire value.
func ParsePriority(s string) (Priority, bool) {
	switch lower(s) {
	case "urgent", "1":
		return Urgent, true
	case "high", "2":
		return High, true
	case "medium", "normal", "3":
		return Medium, true
	case "low", "4":
		return Low, true
	case "none", "no priority", "nopriority", "0":
		return NoPriority, true
	}
	return NoPriority, false
}

// Label is a label reference on an issue.
type Label struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// WorkflowState is a team status.
type WorkflowState struct {
	ID       string
	Name     string
	Type     string
	Position float64
}

// Member is a team member who can be assigned issues.
type Member struct {
	ID          string
	Name        string
	DisplayName string
	Email       string
	IsMe        bool
}

// CommentUser is the author of a comment.
type CommentUser struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Comment is an append-only comment on an issue.
type Comment struct {
	ID        string       `json:"id" yaml:"id"`
	Body      string       `json:"body" yaml:"body"`
	CreatedAt time.Time    `json:"createdAt" yaml:"createdAt"`
	User      *CommentUser `json:"user,omitempty" yaml:"user,omitempty"`
}

// Record is the normalized issue held by the board.
// Empty StateID or AssigneeID means the reference is unset.
type Record struct {
	ID           string    `json:"id" yaml:"id"`
	Identifier   string    `json:"identifier" yaml:"identifier"`
	Title        string    `json:"title" yaml:"title"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	StateID      string    `json:"stateId,omitempty" yaml:"stateId,omitempty"`
	StateName    string    `json:"stateName,omitempty" yaml:"stateName,omitempty"`
	Priority     Priority  `json:"priority" yaml:"priority"`
	Labels       []Label   `json:"labels" yaml:"labels"`
	AssigneeID   string    `json:"assigneeId,omitempty" yaml:"assigneeId,omitempty"`
	AssigneeName string    `json:"assigneeName,omitempty" yaml:"assigneeName,omitempty"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
	URL          string    `json:"url,omitempty" yaml:"url,omitempty"`
	Comments     []Comment `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// HasLabel reports whether the record carries the label id.
func (r Record) HasLabel(id string) bool {
	for _, l := range r.Labels {
		if l.ID == id {
			return true
		}
	}
	return false
}

// LabelIDs returns the ids of the record's labels in order.
func (r Record) LabelIDs() []string {
	ids := make([]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		ids = append(ids, l.ID)
	}
	return ids
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	c := r
	if r.Labels != nil {
		c.Labels = append([]Label(nil), r.Labels...)
	}
	if r.Comments != nil {
		c.Comments = append([]Comment(nil), r.Comments...)
	}
	return c
}

// Team is a Linear team.
type Team struct {
	ID   string
	Key  string
	Name string
}

// TeamContext is everything fetched once per session for the selected team.
type TeamContext struct {
	Team    Team
	States  []WorkflowState
	Labels  []Label
	Members []Member
}

// State returns the workflow state with the given id.
func (tc TeamContext) State(id string) (WorkflowState, bool) {
	for _, s := range tc.States {
		if s.ID == id {
			return s, true
		}
	}
	return WorkflowState{}, false
}

// Label returns the label with the given id.
func (tc TeamContext) Label(id string) (Label, bool) {
	for _, l := range tc.Labels {
		if l.ID == id {
			return l, true
		}
	}
	return Label{}, false
}

// Member returns the member with the given id.
func (tc TeamContext) Member(id string) (Member, bool) {
	for _, m := range tc.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Me returns the member flagged as the API key owner, if present.
func (tc TeamContext) Me() (Member, bool) {
	for _, m := range tc.Members {
		if m.IsMe {
			return m, true
		}
	}
	return Member{}, false
}

// Field identifies an independently editable part of an issue.
type Field int

const (
	FieldState Field = iota
	FieldPriority
	FieldLabels
	FieldAssignee
	// FieldContent covers title and description together.
	FieldContent
	// FieldComments is only used to lock comment submission.
	FieldComments
)

func (f Field) String() string {
	switch f {
	case FieldState:
		return "state"
	case FieldPriority:
		return "priority"
	case FieldLabels:
		return "labels"
	case FieldAssignee:
		return "assignee"
	case FieldContent:
		return "content"
	case FieldComments:
		return "comments"
	default:
		return "unknown"
	}
}

// Update is one narrow field change. Only the members for Field are read.
type Update struct {
	Field       Field
	StateID     string
	Priority    Priority
	LabelIDs    []string
	AssigneeID  string // empty unassigns
	Title       string
	Description string
}

// CreateInput describes a new issue.
type CreateInput struct {
	Title       string
	Description string
	Priority    Priority
	LabelIDs    []string
	StateID     string
	AssigneeID  string
}

// MaxTitleLength is the longest accepted title, in characters.
const MaxTitleLength = 255
