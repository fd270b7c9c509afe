package linearapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

// issueNodeJSON returns a JSON object string for an issue node used in tests.
func issueNodeJSON(id, identifier, title string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"identifier": %q,
		"title": %q,
		"state": {"id": "state-1", "name": "Todo"},
		"assignee": null,
		"priority": 1,
		"updatedAt": "2025-01-01T00:00:00Z",
		"createdAt": "2025-01-01T00:00:00Z",
		"description": null,
		"team": {"id": "team-1"},
		"labels": {"nodes": []},
		"url": "https://linear.app/issue/%s"
	}`, id, identifier, title, identifier)
}

// issuesPageResponse builds a GraphQL response with issue nodes and page info.
func issuesPageResponse(nodes []string, hasNextPage bool, endCursor string) string {
	return fmt.Sprintf(`{
		"data": {
			"issues": {
				"nodes": [%s],
				"pageInfo": {
					"hasNextPage": %t,
					"endCursor": %q
				}
			}
		}
	}`, strings.Join(nodes, ","), hasNextPage, endCursor)
}

// graphqlServer serves each response in order and records request variables.
func graphqlServer(t *testing.T, responses ...string) (*httptest.Server, *[]map[string]interface{}) {
	t.Helper()
	var seen []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		seen = append(seen, reqBody.Variables)

		idx := len(seen) - 1
		if idx >= len(responses) {
			idx = len(responses) - 1
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(responses[idx]))
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestNewClient_CustomHTTPClient(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": {"teams": {"nodes": []}}}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Token:      "my-token",
		Endpoint:   server.URL,
		HTTPClient: &http.Client{},
	})

	teams, err := client.ListTeams(context.Background())
	if err != nil {
		t.Fatalf("ListTeams() error: %v", err)
	}
	if len(teams) != 0 {
		t.Errorf("ListTeams() = %d teams, want 0", len(teams))
	}
	if authHeader != "my-token" {
		t.Errorf("Authorization header = %q, want %q", authHeader, "my-token")
	}
}

func TestAuthTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "test-token" {
			t.Errorf("Authorization header = %q, want %q", auth, "test-token")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data": {"issues": {"nodes": []}}}`))
	}))
	defer server.Close()

	transport := &authTransport{
		Token: "test-token",
		Base:  http.DefaultTransport,
	}

	req, err := http.NewRequest("POST", server.URL, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip() error: %v", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}

func TestAuthTransport_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Rate limit exceeded","extensions":{"code":"RATELIMITED"}}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})
	_, err := client.ListTeams(context.Background())
	if err == nil {
		t.Fatal("ListTeams() error = nil, want StatusError")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("errors.As(%v, *StatusError) = false", err)
	}
	if se.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want %d", se.StatusCode, http.StatusTooManyRequests)
	}
	if se.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", se.RetryAfter)
	}
	if got := se.Codes(); !reflect.DeepEqual(got, []string{"RATELIMITED"}) {
		t.Errorf("Codes() = %v, want [RATELIMITED]", got)
	}
	if se.Message() != "Rate limit exceeded" {
		t.Errorf("Message() = %q, want %q", se.Message(), "Rate limit exceeded")
	}
}

func TestStatusError_PrefersUserPresentableMessage(t *testing.T) {
	se := &StatusError{
		Status: "400 Bad Request",
		Errors: []GraphQLError{{Message: "Argument Validation Error"}},
	}
	se.Errors[0].Extensions.UserPresentableMessage = "Title is too long"
	se.Errors[0].Extensions.Type = "invalid input"

	if se.Message() != "Title is too long" {
		t.Errorf("Message() = %q, want user presentable message", se.Message())
	}
	if got := se.Codes(); !reflect.DeepEqual(got, []string{"INVALID INPUT"}) {
		t.Errorf("Codes() = %v, want [INVALID INPUT]", got)
	}
	if !strings.Contains(se.Error(), "400 Bad Request") {
		t.Errorf("Error() = %q, want status", se.Error())
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"empty", "", 0},
		{"seconds", "30", 30 * time.Second},
		{"negative", "-5", 0},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"past date", now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage", "soon", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseRetryAfter(tt.value, now); got != tt.want {
				t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// TestFetchIssues_PaginatesAllPages verifies that all pages are fetched and concatenated.
func TestFetchIssues_PaginatesAllPages(t *testing.T) {
	pageOne := issuesPageResponse([]string{
		issueNodeJSON("issue-1", "ABC-1", "First issue"),
	}, true, "cursor-1")
	pageTwo := issuesPageResponse([]string{
		issueNodeJSON("issue-2", "ABC-2", "Second issue"),
		issueNodeJSON("issue-3", "ABC-3", "Third issue"),
	}, false, "cursor-2")

	server, seen := graphqlServer(t, pageOne, pageTwo)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	issues, err := client.FetchIssues(context.Background(), FetchIssuesParams{First: 2})
	if err != nil {
		t.Fatalf("FetchIssues() error: %v", err)
	}

	if len(*seen) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(*seen))
	}
	if (*seen)[0]["after"] != nil {
		t.Errorf("First request after = %#v, want nil", (*seen)[0]["after"])
	}
	if (*seen)[1]["after"] != "cursor-1" {
		t.Errorf("Second request after = %#v, want %q", (*seen)[1]["after"], "cursor-1")
	}
	if (*seen)[0]["orderBy"] != "updatedAt" {
		t.Errorf("orderBy = %#v, want updatedAt", (*seen)[0]["orderBy"])
	}

	if len(issues) != 3 {
		t.Fatalf("Fetched issues = %d, want 3", len(issues))
	}
	if issues[0].ID != "issue-1" || issues[1].ID != "issue-2" || issues[2].ID != "issue-3" {
		t.Errorf("Fetched issues order = [%s, %s, %s], want issue-1, issue-2, issue-3",
			issues[0].ID, issues[1].ID, issues[2].ID)
	}
	if issues[0].StateID != "state-1" || issues[0].State != "Todo" {
		t.Errorf("issue state = %q/%q, want state-1/Todo", issues[0].StateID, issues[0].State)
	}
	if issues[0].Priority != 1 {
		t.Errorf("issue priority = %d, want 1", issues[0].Priority)
	}
}

// TestFetchIssues_ProgressCallback verifies progress updates per page.
func TestFetchIssues_ProgressCallback(t *testing.T) {
	pageOne := issuesPageResponse([]string{
		issueNodeJSON("issue-1", "ABC-1", "First issue"),
	}, true, "cursor-1")
	pageTwo := issuesPageResponse([]string{
		issueNodeJSON("issue-2", "ABC-2", "Second issue"),
		issueNodeJSON("issue-3", "ABC-3", "Third issue"),
	}, false, "cursor-2")

	server, _ := graphqlServer(t, pageOne, pageTwo)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	progressCalls := make([]IssueFetchProgress, 0)
	params := FetchIssuesParams{
		First: 2,
		OnProgress: func(progress IssueFetchProgress) {
			progressCalls = append(progressCalls, progress)
		},
	}

	if _, err := client.FetchIssues(context.Background(), params); err != nil {
		t.Fatalf("FetchIssues() error: %v", err)
	}

	if len(progressCalls) != 2 {
		t.Fatalf("Progress calls = %d, want 2", len(progressCalls))
	}
	if progressCalls[0].Page != 1 || progressCalls[0].Fetched != 1 {
		t.Errorf("First progress = %+v, want Page=1 Fetched=1", progressCalls[0])
	}
	if progressCalls[1].Page != 2 || progressCalls[1].Fetched != 3 {
		t.Errorf("Second progress = %+v, want Page=2 Fetched=3", progressCalls[1])
	}
}

// TestFetchIssues_StopsWhenNoNextPage verifies pagination stops at the last page.
func TestFetchIssues_StopsWhenNoNextPage(t *testing.T) {
	response := issuesPageResponse([]string{
		issueNodeJSON("issue-1", "ABC-1", "First issue"),
	}, false, "cursor-1")

	server, seen := graphqlServer(t, response)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	page, err := client.FetchIssuesPage(context.Background(), FetchIssuesParams{First: 1}, nil)
	if err != nil {
		t.Fatalf("FetchIssuesPage() error: %v", err)
	}
	if page.HasNext || page.EndCursor != nil {
		t.Errorf("page = %+v, want no next cursor", page)
	}

	if _, err := client.FetchIssues(context.Background(), FetchIssuesParams{First: 1}); err != nil {
		t.Fatalf("FetchIssues() error: %v", err)
	}
	if len(*seen) != 2 {
		t.Fatalf("Expected 2 requests total, got %d", len(*seen))
	}
}

// TestFetchIssuesPage_FilterAndOrder verifies the team filter and sort order variables.
func TestFetchIssuesPage_FilterAndOrder(t *testing.T) {
	tests := []struct {
		name    string
		params  FetchIssuesParams
		filter  map[string]interface{}
		orderBy string
	}{
		{
			name:    "defaults",
			params:  FetchIssuesParams{},
			filter:  map[string]interface{}{},
			orderBy: "updatedAt",
		},
		{
			name:   "team in creation order",
			params: FetchIssuesParams{TeamID: "team-1", OrderBy: OrderByCreatedAt},
			filter: map[string]interface{}{
				"team": map[string]interface{}{"id": map[string]interface{}{"eq": "team-1"}},
			},
			orderBy: "createdAt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, seen := graphqlServer(t, issuesPageResponse(nil, false, ""))
			client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

			if _, err := client.FetchIssuesPage(context.Background(), tt.params, nil); err != nil {
				t.Fatalf("FetchIssuesPage() error: %v", err)
			}
			vars := (*seen)[0]
			if !reflect.DeepEqual(vars["filter"], tt.filter) {
				t.Errorf("filter = %#v, want %#v", vars["filter"], tt.filter)
			}
			if vars["orderBy"] != tt.orderBy {
				t.Errorf("orderBy = %#v, want %q", vars["orderBy"], tt.orderBy)
			}
			if vars["first"] != float64(defaultPageSize) {
				t.Errorf("first = %#v, want %d", vars["first"], defaultPageSize)
			}
		})
	}
}

func TestListWorkflowStates_SortedByPosition(t *testing.T) {
	server, seen := graphqlServer(t, `{"data":{"team":{"states":{"nodes":[
		{"id":"s-3","name":"Done","type":"completed","position":3},
		{"id":"s-1","name":"Todo","type":"unstarted","position":1},
		{"id":"s-2","name":"In Progress","type":"started","position":2}
	]}}}}`)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	states, err := client.ListWorkflowStates(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("ListWorkflowStates() error: %v", err)
	}
	if (*seen)[0]["teamId"] != "team-1" {
		t.Errorf("teamId = %#v, want team-1", (*seen)[0]["teamId"])
	}
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.Name)
		if s.TeamID != "team-1" {
			t.Errorf("state %s TeamID = %q, want team-1", s.Name, s.TeamID)
		}
	}
	if !reflect.DeepEqual(names, []string{"Todo", "In Progress", "Done"}) {
		t.Errorf("states = %v, want position order", names)
	}
}

func TestListIssueLabels_MergesWorkspaceAndTeam(t *testing.T) {
	server, _ := graphqlServer(t,
		`{"data":{"issueLabels":{"nodes":[
			{"id":"l-1","name":"bug","color":"#ff0000"},
			{"id":"l-2","name":"ui","color":"#00ff00"}
		]}}}`,
		`{"data":{"team":{"labels":{"nodes":[
			{"id":"l-2","name":"ui","color":"#0000ff"},
			{"id":"l-3","name":"backend","color":"#cccccc"}
		]}}}}`,
	)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	labels, err := client.ListIssueLabels(context.Background(), "team-1")
	if err != nil {
		t.Fatalf("ListIssueLabels() error: %v", err)
	}
	want := []IssueLabel{
		{ID: "l-3", Name: "backend", Color: "#cccccc"},
		{ID: "l-1", Name: "bug", Color: "#ff0000"},
		{ID: "l-2", Name: "ui", Color: "#0000ff"},
	}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("ListIssueLabels() = %+v, want %+v", labels, want)
	}
}

func TestFetchIssueComments(t *testing.T) {
	server, seen := graphqlServer(t, `{"data":{"issue":{"id":"issue-1","comments":{"nodes":[
		{"id":"c-2","body":"second","createdAt":"2025-01-02T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z","user":null},
		{"id":"c-1","body":"first","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z",
		 "user":{"id":"u-1","name":"Ada","displayName":"ada","email":"ada@example.com","isMe":true}}
	]}}}}`)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	comments, err := client.FetchIssueComments(context.Background(), "issue-1")
	if err != nil {
		t.Fatalf("FetchIssueComments() error: %v", err)
	}
	if (*seen)[0]["id"] != "issue-1" {
		t.Errorf("id variable = %#v, want issue-1", (*seen)[0]["id"])
	}
	if len(comments) != 2 {
		t.Fatalf("comments = %d, want 2", len(comments))
	}
	if comments[0].ID != "c-1" || comments[1].ID != "c-2" {
		t.Errorf("comments order = [%s, %s], want oldest first", comments[0].ID, comments[1].ID)
	}
	if comments[0].Author == nil || comments[0].Author.Name != "Ada" || !comments[0].Author.IsMe {
		t.Errorf("first comment author = %+v, want Ada (me)", comments[0].Author)
	}
	if comments[1].Author != nil {
		t.Errorf("second comment author = %+v, want nil", comments[1].Author)
	}
	if comments[0].IssueID != "issue-1" {
		t.Errorf("IssueID = %q, want issue-1", comments[0].IssueID)
	}
}

func TestFetchIssueComments_PaginatesAllPages(t *testing.T) {
	pageOne := `{"data":{"issue":{"id":"issue-1","comments":{"nodes":[
		{"id":"c-1","body":"first","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z","user":null}
	],"pageInfo":{"hasNextPage":true,"endCursor":"cursor-1"}}}}}`
	pageTwo := `{"data":{"issue":{"id":"issue-1","comments":{"nodes":[
		{"id":"c-2","body":"second","createdAt":"2025-01-02T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z","user":null}
	],"pageInfo":{"hasNextPage":false,"endCursor":"cursor-2"}}}}}`

	server, seen := graphqlServer(t, pageOne, pageTwo)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	comments, err := client.FetchIssueComments(context.Background(), "issue-1")
	if err != nil {
		t.Fatalf("FetchIssueComments() error: %v", err)
	}
	if len(*seen) != 2 {
		t.Fatalf("Expected 2 requests, got %d", len(*seen))
	}
	if (*seen)[0]["after"] != nil {
		t.Errorf("First request after = %#v, want nil", (*seen)[0]["after"])
	}
	if (*seen)[1]["after"] != "cursor-1" {
		t.Errorf("Second request after = %#v, want %q", (*seen)[1]["after"], "cursor-1")
	}
	if (*seen)[0]["first"] != float64(commentsPageSize) {
		t.Errorf("first = %#v, want %d", (*seen)[0]["first"], commentsPageSize)
	}
	if len(comments) != 2 || comments[0].ID != "c-1" || comments[1].ID != "c-2" {
		t.Errorf("comments = %+v, want c-1 then c-2", comments)
	}
}

func TestCreateIssue_SendsLabelsAndPriority(t *testing.T) {
	server, seen := graphqlServer(t, fmt.Sprintf(`{"data":{"issueCreate":{"success":true,"issue":%s}}}`,
		issueNodeJSON("issue-9", "ABC-9", "New")))
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	issue, err := client.CreateIssue(context.Background(), CreateIssueInput{
		TeamID:   "team-1",
		Title:    "New",
		Priority: 2,
		LabelIDs: []string{"l-1", "l-2"},
	})
	if err != nil {
		t.Fatalf("CreateIssue() error: %v", err)
	}
	if issue.Identifier != "ABC-9" {
		t.Errorf("Identifier = %q, want ABC-9", issue.Identifier)
	}

	input, ok := (*seen)[0]["input"].(map[string]interface{})
	if !ok {
		t.Fatalf("input variable = %#v, want object", (*seen)[0]["input"])
	}
	if input["teamId"] != "team-1" || input["title"] != "New" {
		t.Errorf("input = %#v, want teamId and title", input)
	}
	if input["priority"] != float64(2) {
		t.Errorf("priority = %#v, want 2", input["priority"])
	}
	if !reflect.DeepEqual(input["labelIds"], []interface{}{"l-1", "l-2"}) {
		t.Errorf("labelIds = %#v, want [l-1 l-2]", input["labelIds"])
	}
	if _, ok := input["description"]; ok {
		t.Error("description should be omitted when empty")
	}
}

func TestCreateIssue_SuccessFalse(t *testing.T) {
	server, _ := graphqlServer(t, fmt.Sprintf(`{"data":{"issueCreate":{"success":false,"issue":%s}}}`,
		issueNodeJSON("issue-9", "ABC-9", "New")))
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	_, err := client.CreateIssue(context.Background(), CreateIssueInput{TeamID: "team-1", Title: "New"})
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("CreateIssue() error = %v, want ErrOperationFailed", err)
	}
}

func TestUpdateIssue_Variables(t *testing.T) {
	response := fmt.Sprintf(`{"data":{"issueUpdate":{"success":true,"issue":%s}}}`,
		issueNodeJSON("issue-1", "ABC-1", "Title"))

	unassign := ""
	noState := ""
	priority := 0
	noLabels := []string{}
	labels := []string{"l-1"}

	tests := []struct {
		name   string
		input  UpdateIssueInput
		key    string
		want   interface{}
		absent []string
	}{
		{
			name:   "unassign sends null",
			input:  UpdateIssueInput{ID: "issue-1", AssigneeID: &unassign},
			key:    "assigneeId",
			want:   nil,
			absent: []string{"title", "labelIds"},
		},
		{
			name:  "empty state sends null",
			input: UpdateIssueInput{ID: "issue-1", StateID: &noState},
			key:   "stateId",
			want:  nil,
		},
		{
			name:  "priority zero is sent",
			input: UpdateIssueInput{ID: "issue-1", Priority: &priority},
			key:   "priority",
			want:  float64(0),
		},
		{
			name:  "empty labels clears",
			input: UpdateIssueInput{ID: "issue-1", LabelIDs: &noLabels},
			key:   "labelIds",
			want:  []interface{}{},
		},
		{
			name:  "labels set",
			input: UpdateIssueInput{ID: "issue-1", LabelIDs: &labels},
			key:   "labelIds",
			want:  []interface{}{"l-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, seen := graphqlServer(t, response)
			client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

			if _, err := client.UpdateIssue(context.Background(), tt.input); err != nil {
				t.Fatalf("UpdateIssue() error: %v", err)
			}
			if (*seen)[0]["id"] != "issue-1" {
				t.Errorf("id = %#v, want issue-1", (*seen)[0]["id"])
			}
			input := (*seen)[0]["input"].(map[string]interface{})
			got, ok := input[tt.key]
			if !ok {
				t.Fatalf("input missing %q: %#v", tt.key, input)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("input[%q] = %#v, want %#v", tt.key, got, tt.want)
			}
			for _, k := range tt.absent {
				if _, ok := input[k]; ok {
					t.Errorf("input[%q] should be absent", k)
				}
			}
		})
	}
}

func TestCreateComment(t *testing.T) {
	server, seen := graphqlServer(t, `{"data":{"commentCreate":{"success":true,"comment":
		{"id":"c-1","body":"hello","createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z","user":null}}}}`)
	client := NewClient(ClientConfig{Token: "test-token", Endpoint: server.URL})

	comment, err := client.CreateComment(context.Background(), CreateCommentInput{IssueID: "issue-1", Body: "hello"})
	if err != nil {
		t.Fatalf("CreateComment() error: %v", err)
	}
	if comment.ID != "c-1" || comment.Body != "hello" || comment.IssueID != "issue-1" {
		t.Errorf("comment = %+v", comment)
	}
	input := (*seen)[0]["input"].(map[string]interface{})
	if input["issueId"] != "issue-1" || input["body"] != "hello" {
		t.Errorf("input = %#v", input)
	}
}
