package graphql

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/todograph/todograph/internal/logging"
	"github.com/todograph/todograph/internal/server/auth"
)

// Handler serves the single graph-query endpoint. It resolves the caller's
// identity before executing any operation: a missing authorization header
// means an anonymous context, while a present-but-invalid token fails the
// whole request at the boundary.
type Handler struct {
	schema graphql.Schema
	codec  *auth.Codec
	logger logging.Logger
}

func NewHandler(schema graphql.Schema, codec *auth.Codec, logger logging.Logger) *Handler {
	return &Handler{schema: schema, codec: codec, logger: logger}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type errorsPayload struct {
	Errors []errorEntry `json:"errors"`
}

type errorEntry struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeErrors(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorsPayload{Errors: []errorEntry{{
		Message:    message,
		Extensions: map[string]interface{}{"code": code},
	}}})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrors(w, http.StatusMethodNotAllowed, "only POST is supported", codeInvalidArgument)
		return
	}

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrors(w, http.StatusBadRequest, "malformed request body", codeInvalidArgument)
		return
	}

	ctx := r.Context()

	// The "Bearer " prefix is optional on the wire; both header forms are
	// accepted. Absence of the header is not an error — the request simply
	// runs anonymously and operations that need identity reject it.
	if header := r.Header.Get("Authorization"); header != "" {
		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := h.codec.Verify(token)
		if err != nil {
			h.logger.Warn(ctx, "invalid token", "error", err.Error())
			writeErrors(w, http.StatusUnauthorized,
				"Authentication failed: invalid or expired token.", codeAuthenticationFailed)
			return
		}
		ctx = withUserID(ctx, userID)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	writeJSON(w, http.StatusOK, result)
}
