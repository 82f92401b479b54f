// Package api provides typed access to the todograph server for interactive
// tools. It speaks the graph protocol over a single HTTP endpoint and hides
// the request envelope from callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client provides typed access to the server's query/mutation surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// New constructs a Client pointing at the provided server base URL.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:8080"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid server base url: %w", err)
	}
	cli := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli, nil
}

// APIError represents an error entry returned by the server.
type APIError struct {
	Code    string
	Message string
}

func (e APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%s): %s", e.Code, e.Message)
}

// Todo mirrors the server's Todo payload.
type Todo struct {
	ID          string `json:"id"`
	Task        string `json:"task"`
	Description string `json:"description"`
	IsDone      bool   `json:"isDone"`
}

// User mirrors the server's User payload, including the owned todos.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Todos []Todo `json:"todos"`
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// execute posts a single operation and unmarshals the data payload into out.
// Any error entry in the response is surfaced as an APIError.
func (c *Client) execute(ctx context.Context, token, query string, variables map[string]any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		return APIError{Code: first.Extensions.Code, Message: first.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(decoded.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

const (
	signUpQuery = `mutation($name: String!, $email: String!, $password: String!) {
		signUpUser(name: $name, email: $email, password: $password) { token }
	}`
	signInQuery = `mutation($email: String!, $password: String!) {
		signInUser(email: $email, password: $password) { token }
	}`
	getUserQuery = `query {
		getUser { id name email todos { id task description isDone } }
	}`
	getTodoQuery = `query($id: ID!) {
		getTodoById(id: $id) { id task description isDone }
	}`
	createTodoQuery = `mutation($task: String!, $description: String) {
		createTodo(task: $task, description: $description)
	}`
	updateTodoQuery = `mutation($todoId: ID!, $task: String, $isMark: Boolean, $description: String) {
		updateOrMarkTodo(todoId: $todoId, task: $task, isMark: $isMark, description: $description) {
			id task description isDone
		}
	}`
	deleteTodoQuery = `mutation($id: ID!) { deleteTodo(id: $id) }`
)

// SignUp creates an account and returns a bearer token for it.
func (c *Client) SignUp(ctx context.Context, name, email, password string) (string, error) {
	var out struct {
		SignUpUser struct {
			Token string `json:"token"`
		} `json:"signUpUser"`
	}
	err := c.execute(ctx, "", signUpQuery, map[string]any{
		"name": name, "email": email, "password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.SignUpUser.Token, nil
}

// SignIn exchanges credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (string, error) {
	var out struct {
		SignInUser struct {
			Token string `json:"token"`
		} `json:"signInUser"`
	}
	err := c.execute(ctx, "", signInQuery, map[string]any{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.SignInUser.Token, nil
}

// GetUser returns the authenticated user's profile with their todos.
func (c *Client) GetUser(ctx context.Context, token string) (*User, error) {
	var out struct {
		GetUser *User `json:"getUser"`
	}
	if err := c.execute(ctx, token, getUserQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.GetUser, nil
}

// GetTodoByID returns one of the caller's todos.
func (c *Client) GetTodoByID(ctx context.Context, token, id string) (*Todo, error) {
	var out struct {
		GetTodoByID *Todo `json:"getTodoById"`
	}
	if err := c.execute(ctx, token, getTodoQuery, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	return out.GetTodoByID, nil
}

// CreateTodo creates a todo and returns the server's confirmation message.
func (c *Client) CreateTodo(ctx context.Context, token, task, description string) (string, error) {
	variables := map[string]any{"task": task}
	if description != "" {
		variables["description"] = description
	}
	var out struct {
		CreateTodo string `json:"createTodo"`
	}
	if err := c.execute(ctx, token, createTodoQuery, variables, &out); err != nil {
		return "", err
	}
	return out.CreateTodo, nil
}

// UpdateTodo overwrites the supplied fields of a todo. Empty fields are left
// untouched on the server.
func (c *Client) UpdateTodo(ctx context.Context, token, id, task, description string) (*Todo, error) {
	variables := map[string]any{"todoId": id}
	if task != "" {
		variables["task"] = task
	}
	if description != "" {
		variables["description"] = description
	}
	var out struct {
		UpdateOrMarkTodo *Todo `json:"updateOrMarkTodo"`
	}
	if err := c.execute(ctx, token, updateTodoQuery, variables, &out); err != nil {
		return nil, err
	}
	return out.UpdateOrMarkTodo, nil
}

// MarkTodo toggles a todo's done flag.
func (c *Client) MarkTodo(ctx context.Context, token, id string) (*Todo, error) {
	variables := map[string]any{"todoId": id, "isMark": true}
	var out struct {
		UpdateOrMarkTodo *Todo `json:"updateOrMarkTodo"`
	}
	if err := c.execute(ctx, token, updateTodoQuery, variables, &out); err != nil {
		return nil, err
	}
	return out.UpdateOrMarkTodo, nil
}

// DeleteTodo removes a todo and returns the server's confirmation message.
func (c *Client) DeleteTodo(ctx context.Context, token, id string) (string, error) {
	var out struct {
		DeleteTodo string `json:"deleteTodo"`
	}
	if err := c.execute(ctx, token, deleteTodoQuery, map[string]any{"id": id}, &out); err != nil {
		return "", err
	}
	return out.DeleteTodo, nil
}
