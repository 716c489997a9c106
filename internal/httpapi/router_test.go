package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/UkralStul/task-notes-service/internal/service"
	"github.com/UkralStul/task-notes-service/internal/storage/inmemory"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := inmemory.New()
	log, _ := logtest.NewNullLogger()
	srv := httptest.NewServer(NewRouter(&Handler{
		Tasks:    service.NewTaskService(store, nil, log),
		Notes:    service.NewNoteService(store, nil, log),
		Comments: service.NewCommentService(store, log),
		Subtasks: service.NewSubtaskService(store, log),
		Log:      log,
	}))
	t.Cleanup(srv.Close)
	return srv
}

// do выполняет запрос и декодирует JSON-ответ, если он есть.
func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp.StatusCode, out
}

func doList(t *testing.T, srv *httptest.Server, path string) (int, []map[string]any) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func id(t *testing.T, body map[string]any) int64 {
	t.Helper()
	v, ok := body["id"].(float64)
	require.True(t, ok, "response has numeric id: %v", body)
	return int64(v)
}

func TestScenario_CreateUpdateDetails(t *testing.T) {
	srv := newTestServer(t)

	status, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "UNDONE", task["status"])
	assert.Equal(t, "MIDDLE", task["priority"])
	assert.True(t, strings.HasSuffix(task["createdAt"].(string), "Z"), "timestamps are UTC")
	taskID := id(t, task)

	status, updated := do(t, srv, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), `{"status":"DONE"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DONE", updated["status"])
	assert.Equal(t, "T", updated["title"])
	assert.Equal(t, "D", updated["description"])

	status, details := do(t, srv, http.MethodGet, fmt.Sprintf("/tasks/details/%d", taskID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{}, details["comments"])
	assert.Equal(t, []any{}, details["subtasks"])
}

func TestTasks_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	body := `{"title":"T","description":"D","authorId":1,"groupId":2,"doerId":3,"priority":"HIGH",
		"location":{"latitude":90,"longitude":-180,"name":"Pole","remindByLocation":true},
		"deadline":{"time":"2030-01-02T03:04:05Z","remindByTime":true}}`
	status, created := do(t, srv, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, status)

	status, got := do(t, srv, http.MethodGet, fmt.Sprintf("/tasks/%d", id(t, created)), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, got)
}

func TestTasks_Validation(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"D","authorId":1}`},
		{"empty title", `{"title":"","description":"D","authorId":1}`},
		{"bad enum", `{"title":"T","description":"D","authorId":1,"status":"done"}`},
		{"latitude out of range", `{"title":"T","description":"D","authorId":1,
			"location":{"latitude":90.0001,"longitude":0,"name":"x","remindByLocation":false}}`},
		{"wrong type", `{"title":5,"description":"D","authorId":1}`},
		{"malformed", `{"title":`},
		{"empty body", ``},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, srv, http.MethodPost, "/tasks", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.EqualValues(t, http.StatusBadRequest, body["status"])
			assert.NotEmpty(t, body["timestamp"])
		})
	}

	status, list := doList(t, srv, "/tasks/user/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, list, "rejected creates store nothing")
}

func TestTasks_UpdateAtomicity(t *testing.T) {
	srv := newTestServer(t)

	_, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	path := fmt.Sprintf("/tasks/%d", id(t, task))

	status, body := do(t, srv, http.MethodPut, path, `{"title":"New","priority":"URGENT"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	violations, ok := body["violations"].([]any)
	require.True(t, ok)
	assert.Len(t, violations, 1)

	_, got := do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, "T", got["title"])

	status, _ = do(t, srv, http.MethodPut, path, `{"title":null}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, got = do(t, srv, http.MethodPut, path, `{"groupId":4}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 4, got["groupId"])

	status, got = do(t, srv, http.MethodPut, path, `{"groupId":null}`)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, got["groupId"])
}

func TestTasks_DeleteThenNotFound(t *testing.T) {
	srv := newTestServer(t)

	_, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	taskID := id(t, task)
	path := fmt.Sprintf("/tasks/%d", taskID)

	var commentIDs []int64
	for i := 0; i < 3; i++ {
		status, c := do(t, srv, http.MethodPut, path+"/comment", `{"authorId":2,"text":"hi"}`)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, taskID, c["taskId"])
		commentIDs = append(commentIDs, id(t, c))
	}

	status, _ := do(t, srv, http.MethodDelete, path, "")
	require.Equal(t, http.StatusNoContent, status)

	status, body := do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.EqualValues(t, http.StatusNotFound, body["status"])

	status, _ = do(t, srv, http.MethodPut, path, `{"status":"DONE"}`)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = do(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)

	for _, cid := range commentIDs {
		status, _ = do(t, srv, http.MethodDelete, fmt.Sprintf("/tasks/comment/%d", cid), "")
		assert.Equal(t, http.StatusNotFound, status)
	}
}

func TestTasks_InvalidPathID(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/tasks/abc", "/tasks/0", "/tasks/-1", "/tasks/details/x", "/tasks/user/x"} {
		status, _ := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, status, path)
	}
}

func TestTasks_Listings(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, http.MethodPost, "/tasks", `{"title":"A","description":"D","authorId":1}`)
	do(t, srv, http.MethodPost, "/tasks", `{"title":"B","description":"D","authorId":1,"groupId":9,"doerId":5}`)

	for path, want := range map[string]int{
		"/tasks/user/1":     2,
		"/tasks/personal/1": 1,
		"/tasks/doer/5":     1,
		"/tasks/group/9":    1,
		"/tasks/group/10":   0,
		"/tasks/user/42":    0,
	} {
		status, list := doList(t, srv, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Len(t, list, want, path)
	}
}

func TestTasks_ReferenceIDsMatchListingRoutes(t *testing.T) {
	srv := newTestServer(t)

	status, body := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":0,"groupId":-3,"doerId":-7}`)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, body["violations"], 3)

	status, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1,"groupId":1,"doerId":1}`)
	require.Equal(t, http.StatusCreated, status)

	for _, path := range []string{"/tasks/user/1", "/tasks/group/1", "/tasks/doer/1"} {
		status, list := doList(t, srv, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Len(t, list, 1, path)
	}

	status, _ = do(t, srv, http.MethodPut, fmt.Sprintf("/tasks/%d", id(t, task)), `{"doerId":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = do(t, srv, http.MethodPut, fmt.Sprintf("/tasks/%d/comment", id(t, task)), `{"authorId":0,"text":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnknownIDWinsOverMalformedBody(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPut, "/tasks/999", `{"title":5}`},
		{http.MethodPut, "/tasks/999/comment", `{"authorId":"x"}`},
		{http.MethodPost, "/tasks/999/subtask", `{"text":1}`},
		{http.MethodPut, "/tasks/subtasks/999/status", `{"status":1}`},
		{http.MethodPut, "/tasks/note/999", `{"title":5}`},
		{http.MethodPut, "/tasks/note/999/comment", `{`},
	} {
		status, _ := do(t, srv, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, status, tc.path)
	}

	_, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	status, _ := do(t, srv, http.MethodPut, fmt.Sprintf("/tasks/%d", id(t, task)), `{"title":5}`)
	assert.Equal(t, http.StatusBadRequest, status, "existing task still rejects a malformed body")
}

func TestComments_NotFoundAndValidation(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPut, "/tasks/999/comment", `{"authorId":1,"text":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)

	_, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	path := fmt.Sprintf("/tasks/%d/comment", id(t, task))

	status, _ = do(t, srv, http.MethodPut, path, `{"authorId":1,"text":"`+strings.Repeat("a", 256)+`"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, c := do(t, srv, http.MethodPut, path, `{"authorId":1,"text":""}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "task", c["parentType"])

	status, _ = do(t, srv, http.MethodDelete, "/tasks/comment/12345", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSubtasks(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPost, "/tasks/999/subtask", `{"text":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)

	_, task := do(t, srv, http.MethodPost, "/tasks", `{"title":"T","description":"D","authorId":1}`)
	taskID := id(t, task)

	status, st := do(t, srv, http.MethodPost, fmt.Sprintf("/tasks/%d/subtask", taskID), `{"text":"step"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "UNDONE", st["status"])
	subtaskPath := fmt.Sprintf("/tasks/subtasks/%d", id(t, st))

	status, st = do(t, srv, http.MethodPut, subtaskPath+"/status", `{"status":"DONE"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DONE", st["status"])

	status, _ = do(t, srv, http.MethodPut, subtaskPath+"/status", `{"status":"FINISHED"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = do(t, srv, http.MethodPut, "/tasks/subtasks/999/status", `{"status":"DONE"}`)
	assert.Equal(t, http.StatusNotFound, status)

	_, details := do(t, srv, http.MethodGet, fmt.Sprintf("/tasks/details/%d", taskID), "")
	assert.Len(t, details["subtasks"], 1)

	status, _ = do(t, srv, http.MethodDelete, subtaskPath, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, srv, http.MethodDelete, subtaskPath, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotes(t *testing.T) {
	srv := newTestServer(t)

	status, note := do(t, srv, http.MethodPost, "/tasks/note", `{"title":"N","description":"D","authorId":7,"groupId":3}`)
	require.Equal(t, http.StatusCreated, status)
	assert.NotContains(t, note, "status")
	noteID := id(t, note)
	path := fmt.Sprintf("/tasks/note/%d", noteID)

	status, got := do(t, srv, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, note, got)

	status, got = do(t, srv, http.MethodPut, path, `{"description":"Updated"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "N", got["title"])
	assert.Equal(t, "Updated", got["description"])

	status, c := do(t, srv, http.MethodPut, path+"/comment", `{"authorId":7,"text":"remember"}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, noteID, c["noteId"])
	assert.NotContains(t, c, "taskId")

	status, details := do(t, srv, http.MethodGet, fmt.Sprintf("/tasks/note/details/%d", noteID), "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, details["comments"], 1)

	for p, want := range map[string]int{
		"/tasks/note/user/7":     1,
		"/tasks/note/personal/7": 0,
		"/tasks/note/group/3":    1,
	} {
		status, list := doList(t, srv, p)
		assert.Equal(t, http.StatusOK, status, p)
		assert.Len(t, list, want, p)
	}

	status, _ = do(t, srv, http.MethodDelete, fmt.Sprintf("/tasks/note/comment/%d", id(t, c)), "")
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, srv, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, srv, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	status, body := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
