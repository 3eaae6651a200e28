package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "jane", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newClient(t *testing.T, h http.HandlerFunc) (*api.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, srv.Client(), staticToken("opaque-token")), srv
}

func TestListTasksSendsBearerAndNormalizes(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/getTask", r.URL.Path)
		assert.Equal(t, "Bearer opaque-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"id":1,"title":"Gym","description":"Leg day","status":"ONGOING","priority":"HIGH","dueDate":"2025-06-01","time":"06:30 PM"}]`)
	})

	got, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tasks.StatusOngoing, got[0].Status)
	assert.Equal(t, tasks.PriorityHigh, got[0].Priority)
	assert.Equal(t, "18:30", got[0].DueTime)
}

func TestListTasksNotFoundIsEmpty(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":"No completed tasks found"}`)
	})

	got, err := c.ListCompletedTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListTasksByStatus(t *testing.T) {
	var paths []string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/getCompletedTask":
			io.WriteString(w, `[{"id":3,"title":"Done","status":"COMPLETED"}]`)
		default:
			io.WriteString(w, `[{"id":1,"title":"A","status":"ONGOING"},{"id":2,"title":"B","status":"INCOMPLETE"}]`)
		}
	})

	done, err := c.ListTasksByStatus(context.Background(), tasks.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, done, 1)

	ongoing, err := c.ListTasksByStatus(context.Background(), tasks.StatusOngoing)
	require.NoError(t, err)
	require.Len(t, ongoing, 1)
	assert.Equal(t, int64(1), ongoing[0].ID)

	assert.Equal(t, []string{"/getCompletedTask", "/getTask"}, paths)
}

func TestFetchPicksEndpointFromFilter(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})

	_, src, err := c.Fetch(context.Background(), tasks.FilterCompleted)
	require.NoError(t, err)
	assert.Equal(t, tasks.SourceCompleted, src)

	_, src, err = c.Fetch(context.Background(), tasks.FilterOverdue)
	require.NoError(t, err)
	assert.Equal(t, tasks.SourceAll, src)
}

func TestCreateTaskPayload(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/addTask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"title": "Test",
			"description": "A description",
			"dueDate": "2025-06-01",
			"time": "02:30 PM",
			"priority": "HIGH",
			"status": "INCOMPLETE"
		}`, string(body))
		io.WriteString(w, "Task added successfully")
	})

	task, err := tasks.ParseDraft(tasks.Draft{
		Name: "Test", Description: "A description", DueDate: "2025-06-01",
		DueTime: "14:30", Priority: "High", Status: "Incomplete",
	})
	require.NoError(t, err)
	assert.NoError(t, c.CreateTask(context.Background(), task))
}

func TestUpdateTaskWithoutIDSendsNothing(t *testing.T) {
	var hits int32
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	err := c.UpdateTask(context.Background(), tasks.Task{Title: "No id"})
	var fe *tasks.FieldError
	assert.ErrorAs(t, err, &fe)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestMoveTaskChangesOnlyDueDate(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var got tasks.WireTask
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "2025-07-04", got.DueDate)
		assert.Equal(t, "08:00 AM", got.Time)
		assert.Equal(t, "ONGOING", got.Status)
	})

	task := tasks.Task{ID: 5, Title: "Move me", Description: "Somewhere", Status: tasks.StatusOngoing,
		Priority: tasks.PriorityLow, DueDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.Local), DueTime: "08:00"}
	assert.NoError(t, c.MoveTask(context.Background(), task, time.Date(2025, 7, 4, 15, 0, 0, 0, time.Local)))
}

func TestDeleteTaskPath(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/deleteTask/42", r.URL.Path)
		io.WriteString(w, "Task deleted Successfully")
	})
	assert.NoError(t, c.DeleteTask(context.Background(), 42))
}

func TestUnauthenticated(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := api.New(srv.URL, srv.Client(), staticToken("")).ListTasks(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Zero(t, atomic.LoadInt32(&hits), "no request without a token")

	expired := signedToken(t, time.Now().Add(-time.Hour))
	_, err = api.New(srv.URL, srv.Client(), staticToken(expired)).ListTasks(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Zero(t, atomic.LoadInt32(&hits), "no request with an expired token")

	fresh := signedToken(t, time.Now().Add(time.Hour))
	_, err = api.New(srv.URL, srv.Client(), staticToken(fresh)).ListTasks(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthenticated)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	assert.Equal(t, "Session expired. Please log in again.", api.UserMessage(err, "Failed"))
}

func TestMutationRejected(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, "Task Due date should be in the future")
	})

	err := c.UpdateTask(context.Background(), tasks.Task{ID: 1, Title: "Late"})
	var ve *api.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Task Due date should be in the future", ve.Message)
	assert.Equal(t, "Task Due date should be in the future", api.UserMessage(err, "Failed to update task"))
}

func TestMutationRejectedJSONMessage(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"title":"Title is required","dueDate":"Due date is required"}`)
	})

	err := c.CreateTask(context.Background(), tasks.Task{})
	assert.Equal(t, "Due date is required; Title is required", api.UserMessage(err, "Failed"))
}

func TestServerErrorIsNetworkError(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "Something went wrong OR hitting wrong URL")
	})

	_, err := c.ListTasks(context.Background())
	var ne *api.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, http.StatusInternalServerError, ne.StatusCode)
	assert.Equal(t, "Failed to load tasks", api.UserMessage(err, "Failed to load tasks"))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := api.New(url, nil, staticToken("t")).DeleteTask(context.Background(), 1)
	var ne *api.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Zero(t, ne.StatusCode)
	assert.False(t, errors.Is(err, api.ErrUnauthenticated))
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	assert.True(t, api.TokenExpired(signedToken(t, now.Add(-time.Minute)), now))
	assert.False(t, api.TokenExpired(signedToken(t, now.Add(time.Minute)), now))
	assert.False(t, api.TokenExpired("not-a-jwt", now))
}
