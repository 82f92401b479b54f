package graphql

import (
	"errors"

	"github.com/todograph/todograph/internal/common"
)

// Machine-readable error codes surfaced in extensions.code.
const (
	codeUnauthenticated      = "UNAUTHENTICATED"
	codeAuthenticationFailed = "AUTHENTICATION_FAILED"
	codeNotFound             = "NOT_FOUND"
	codeConflict             = "CONFLICT"
	codeInvalidCredential    = "INVALID_CREDENTIAL"
	codeValidationError      = "VALIDATION_ERROR"
	codeInvalidArgument      = "INVALID_ARGUMENT"
	codeInternal             = "INTERNAL"
)

// apiError carries a taxonomy code alongside the underlying error. It
// implements gqlerrors.ExtendedError, so the code survives error formatting.
type apiError struct {
	code string
	err  error
}

func (e *apiError) Error() string { return e.err.Error() }

func (e *apiError) Unwrap() error { return e.err }

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// wrapError maps sentinel service errors onto the public error taxonomy.
// Anything unrecognized is reported as internal without leaking detail.
func wrapError(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthenticated):
		return &apiError{code: codeUnauthenticated, err: err}
	case errors.Is(err, common.ErrorNotFound):
		return &apiError{code: codeNotFound, err: err}
	case errors.Is(err, common.ErrorAlreadyExists):
		return &apiError{code: codeConflict, err: err}
	case errors.Is(err, common.ErrorInvalidCredentials):
		return &apiError{code: codeInvalidCredential, err: err}
	case errors.Is(err, common.ErrorValidation):
		return &apiError{code: codeValidationError, err: err}
	case errors.Is(err, common.ErrorInvalidArgument):
		return &apiError{code: codeInvalidArgument, err: err}
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return &apiError{code: codeAuthenticationFailed, err: err}
	default:
		return &apiError{code: codeInternal, err: common.ErrorInternal}
	}
}
