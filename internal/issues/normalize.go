package issues

import (
	"strings"
	"unicode/utf8"

	"github.com/roeyazroel/linear-board/internal/linearapi"
)

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeIssue converts an API issue into a Record. Missing priority becomes
// NoPriority, duplicate labels are dropped and a nil description becomes "".
func normalizeIssue(issue linearapi.Issue) Record {
	rec := Record{
		ID:           issue.ID,
		Identifier:   issue.Identifier,
		Title:        issue.Title,
		StateID:      issue.StateID,
		StateName:    issue.State,
		Priority:     NormalizePriority(issue.Priority),
		Labels:       normalizeLabels(issue.Labels),
		AssigneeID:   issue.AssigneeID,
		AssigneeName: issue.Assignee,
		CreatedAt:    issue.CreatedAt,
		UpdatedAt:    issue.UpdatedAt,
		URL:          issue.URL,
	}
	if issue.Description != nil {
		rec.Description = *issue.Description
	}
	if len(issue.Comments) > 0 {
		rec.Comments = normalizeComments(issue.Comments)
	}
	return rec
}

func normalizeLabels(in []linearapi.IssueLabel) []Label {
	out := make([]Label, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, l := range in {
		if l.ID == "" {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, Label{ID: l.ID, Name: l.Name, Color: l.Color})
	}
	return out
}

func normalizeComment(c linearapi.Comment) Comment {
	out := Comment{ID: c.ID, Body: c.Body, CreatedAt: c.CreatedAt}
	if c.Author != nil {
		name := c.Author.DisplayName
		if name == "" {
			name = c.Author.Name
		}
		out.User = &CommentUser{Name: name, Email: c.Author.Email}
	}
	return out
}

func normalizeComments(in []linearapi.Comment) []Comment {
	out := make([]Comment, 0, len(in))
	for _, c := range in {
		out = append(out, normalizeComment(c))
	}
	return out
}

func normalizeStates(in []linearapi.WorkflowState) []WorkflowState {
	out := make([]WorkflowState, 0, len(in))
	for _, s := range in {
		out = append(out, WorkflowState{ID: s.ID, Name: s.Name, Type: s.Type, Position: s.Position})
	}
	return out
}

func normalizeMembers(in []linearapi.User) []Member {
	out := make([]Member, 0, len(in))
	for _, u := range in {
		out = append(out, Member{
			ID:          u.ID,
			Name:        u.Name,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			IsMe:        u.IsMe,
		})
	}
	return out
}

// NormalizeTitle trims the title and checks it is non-empty and at most
// MaxTitleLength characters.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &Error{Category: Validation, Op: "validate title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", &Error{
			Category: Validation,
			Op:       "validate title",
			Message:  "title must be at most 255 characters",
		}
	}
	return title, nil
}

// NormalizeCommentBody trims the body and rejects empty comments.
func NormalizeCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", &Error{Category: Validation, Op: "validate comment", Message: "comment cannot be empty"}
	}
	return body, nil
}
