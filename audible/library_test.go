package audible

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "Atna|library-test-token"

func validateBearer(r *http.Request) error {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		return errors.New("invalid bearer token")
	}
	return nil
}

var libraryResponses = Responses{
	"/1.0/library?num_results=50&page=1": libraryResponse{
		Items:        []LibraryItem{{ASIN: "B001", Title: "Foo", Authors: []Person{{Name: "A. Author"}}}},
		TotalResults: 2,
	},
	"/1.0/library?num_results=50&page=2": libraryResponse{
		Items:        []LibraryItem{{ASIN: "B002", Title: "Bar", IsFinished: true}},
		TotalResults: 2,
	},
	"/1.0/library/B001": libraryItemResponse{
		Item: LibraryItem{ASIN: "B001", Title: "Foo", RuntimeLengthMin: 90, PercentComplete: 50},
	},
}

func TestNewClient_GetURL(t *testing.T) {
	c := NewClient("de", fixedTokenSource{accessToken: testToken}, nil)
	assert.Equal(t, "https://api.audible.de", c.GetURL())
}

func TestClient_GetLibrary(t *testing.T) {
	s := NewTestServer(libraryResponses, validateBearer)
	defer s.server.Close()

	c := NewClient("com", fixedTokenSource{accessToken: testToken}, nil)
	c.URL = s.server.URL
	library, err := c.GetLibrary(t.Context())
	require.NoError(t, err)
	require.Len(t, library, 2)
	assert.Equal(t, "Foo", library[0].Title)
	assert.True(t, library[1].IsFinished)
}

func TestClient_GetLibraryPage(t *testing.T) {
	s := NewTestServer(libraryResponses, validateBearer)
	defer s.server.Close()

	c := NewClient("com", fixedTokenSource{accessToken: testToken}, nil)
	c.URL = s.server.URL
	items, totalResults, err := c.GetLibraryPage(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, totalResults)
	require.Len(t, items, 1)
	assert.Equal(t, "B002", items[0].ASIN)
}

func TestClient_GetLibraryItem(t *testing.T) {
	s := NewTestServer(libraryResponses, validateBearer)
	defer s.server.Close()

	c := NewClient("com", fixedTokenSource{accessToken: testToken}, nil)
	c.URL = s.server.URL
	item, err := c.GetLibraryItem(t.Context(), "B001")
	require.NoError(t, err)
	assert.Equal(t, "Foo", item.Title)
	assert.Equal(t, 90, item.RuntimeLengthMin)
}

func TestClient_BadToken(t *testing.T) {
	s := NewTestServer(libraryResponses, validateBearer)
	defer s.server.Close()

	c := NewClient("com", fixedTokenSource{accessToken: "bad-token"}, nil)
	c.URL = s.server.URL
	_, err := c.GetLibrary(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403 Forbidden")
}

func TestClient_InvalidJSON(t *testing.T) {
	s := NewTestServer(Responses{"/1.0/library/B999": []byte("not json")}, validateBearer)
	defer s.server.Close()

	c := NewClient("com", fixedTokenSource{accessToken: testToken}, nil)
	c.URL = s.server.URL
	_, err := c.GetLibraryItem(t.Context(), "B999")
	var invalidJSON *ErrInvalidJSON
	require.ErrorAs(t, err, &invalidJSON)
	assert.Equal(t, []byte("not json"), invalidJSON.Body)
}
