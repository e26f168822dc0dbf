package registry

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyQuery is returned by SearchCompanies for a blank query. No request
// is made.
var ErrEmptyQuery = errors.New("registry: search query is empty")

// MissingCredentialError is returned by NewClient when no API key was given
// and the environment variable is unset.
type MissingCredentialError struct {
	EnvVar string
}

func (err *MissingCredentialError) Error() string {
	return fmt.Sprintf("API key not found. Please provide it or set the %s environment variable", err.EnvVar)
}

// TransportError wraps a failure to complete the HTTP exchange at all
// (DNS, connection refused, TLS, truncated body).
type TransportError struct {
	Path string
	Err  error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("registry: GET %s: %v", err.Path, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (err *StatusError) Error() string {
	if err.Body == "" {
		return fmt.Sprintf("registry: GET %s: HTTP %d %s", err.Path, err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("registry: GET %s: HTTP %d: %s", err.Path, err.StatusCode, err.Body)
}

// IsNotFound reports whether err is a 404 from the API. The registry answers
// 404 for unknown companies and for companies with no PSC register.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// IsMissingCredential reports whether err is a *MissingCredentialError.
func IsMissingCredential(err error) bool {
	var credErr *MissingCredentialError
	return errors.As(err, &credErr)
}
