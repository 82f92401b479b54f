package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	AuthHeader string
	Query      string
	Variables  map[string]any
}

func newStubServer(t *testing.T, data string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if captured != nil {
			captured.AuthHeader = r.Header.Get("Authorization")
			captured.Query = req.Query
			captured.Variables = req.Variables
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(data))
	}))
}

func TestNew_NormalizesBaseURL(t *testing.T) {
	c, err := New("localhost:9999")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", c.baseURL)

	c, err = New("http://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", c.baseURL)
}

func TestSignUp(t *testing.T) {
	var captured capturedRequest
	srv := newStubServer(t, `{"data":{"signUpUser":{"token":"tok123"}}}`, &captured)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	token, err := c.SignUp(context.Background(), "Alice", "alice@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
	assert.Empty(t, captured.AuthHeader, "sign-up must not send a bearer token")
	assert.Equal(t, "alice@x.com", captured.Variables["email"])
}

func TestGetUser_SendsBearerToken(t *testing.T) {
	var captured capturedRequest
	srv := newStubServer(t, `{"data":{"getUser":{"id":"u1","name":"Alice","email":"alice@x.com","todos":[{"id":"t1","task":"Buy milk","isDone":false}]}}}`, &captured)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	user, err := c.GetUser(context.Background(), "tok123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", captured.AuthHeader)
	require.NotNil(t, user)
	require.Len(t, user.Todos, 1)
	assert.Equal(t, "Buy milk", user.Todos[0].Task)
}

func TestMarkTodo_SendsOnlyMarkFlag(t *testing.T) {
	var captured capturedRequest
	srv := newStubServer(t, `{"data":{"updateOrMarkTodo":{"id":"t1","task":"Buy milk","isDone":true}}}`, &captured)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	todo, err := c.MarkTodo(context.Background(), "tok", "t1")
	require.NoError(t, err)
	assert.True(t, todo.IsDone)

	assert.Equal(t, true, captured.Variables["isMark"])
	_, hasTask := captured.Variables["task"]
	assert.False(t, hasTask, "mark must not carry a task edit")
}

func TestUpdateTodo_OmitsEmptyFields(t *testing.T) {
	var captured capturedRequest
	srv := newStubServer(t, `{"data":{"updateOrMarkTodo":{"id":"t1","task":"Buy oat milk","isDone":false}}}`, &captured)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.UpdateTodo(context.Background(), "tok", "t1", "Buy oat milk", "")
	require.NoError(t, err)

	assert.Equal(t, "Buy oat milk", captured.Variables["task"])
	_, hasDescription := captured.Variables["description"]
	assert.False(t, hasDescription, "empty description must be omitted")
}

func TestExecute_SurfacesErrorEntries(t *testing.T) {
	srv := newStubServer(t, `{"data":null,"errors":[{"message":"todo not found","extensions":{"code":"NOT_FOUND"}}]}`, nil)
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.GetTodoByID(context.Background(), "tok", "missing")
	require.Error(t, err)

	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "todo not found", apiErr.Message)
}
