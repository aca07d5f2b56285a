package audibleauth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoTokenSource indicates that a token source has no way to obtain a valid token:
// no usable cached or stored bundle, and no registration configured.
var ErrNoTokenSource = errors.New("no token source provided")

// ErrNoRefreshToken indicates that the bundle passed to [Config.RefreshToken] contains
// no refresh token.
var ErrNoRefreshToken = errors.New("no refresh token")

var _ error = &AuthError{}

// AuthError is returned when Amazon's auth endpoints reject a request (e.g. an invalid
// authorization code, an expired token, an already-deregistered device). Body contains
// the server's raw response body for diagnosis.
type AuthError struct {
	err        error
	Status     string
	Body       []byte
	StatusCode int
}

func (e *AuthError) Error() string {
	txt := e.Status
	if e.err != nil {
		txt = e.err.Error()
	}
	return "amazon: " + txt
}

func (e *AuthError) Unwrap() error {
	return e.err
}

// parseAuthError parses the error body returned by Amazon's auth endpoints and returns
// an *AuthError. Amazon wraps errors in a response/error envelope with a code and message.
func parseAuthError(r *http.Response) error {
	var errorBody struct {
		Response struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		} `json:"response"`
	}

	var buf bytes.Buffer
	if r.Body != nil {
		_ = json.NewDecoder(io.TeeReader(r.Body, &buf)).Decode(&errorBody)
	}

	e := AuthError{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Body:       buf.Bytes(),
	}
	if errorBody.Response.Error.Code != "" {
		e.err = fmt.Errorf("%s - %s", errorBody.Response.Error.Code, errorBody.Response.Error.Message)
	}
	return &e
}
