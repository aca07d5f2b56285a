package audible

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/clambin/audibleclients/audible/audibleauth"
)

// Responses maps request paths (including query parameters) to canned responses.
// Values are JSON-encoded, except []byte values, which are written as-is.
type Responses map[string]any

type TestServer struct {
	server    *httptest.Server
	responses Responses
	validate  func(*http.Request) error
}

func NewTestServer(responses Responses, validate func(*http.Request) error) *TestServer {
	s := TestServer{responses: responses, validate: validate}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return &s
}

func (s *TestServer) handle(w http.ResponseWriter, r *http.Request) {
	if s.validate != nil {
		if err := s.validate(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
	}
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	response, ok := s.responses[target]
	if !ok {
		http.Error(w, "not found: "+target, http.StatusNotFound)
		return
	}
	if raw, ok := response.([]byte); ok {
		_, _ = w.Write(raw)
		return
	}
	_ = json.NewEncoder(w).Encode(response)
}

var _ audibleauth.TokenSource = fixedTokenSource{}

type fixedTokenSource struct {
	accessToken string
}

func (f fixedTokenSource) Token(_ context.Context) (audibleauth.Token, error) {
	return audibleauth.Token{
		AccessToken: f.accessToken,
		Expires:     time.Now().Add(time.Hour),
	}, nil
}
