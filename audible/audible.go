package audible

import (
	"net/http"

	"github.com/clambin/audibleclients/audible/audibleauth"
)

// Client calls the Audible content API endpoints
type Client struct {
	Client *http.Client
	URL    string
}

// NewClient returns a Client for the marketplace with the given top-level domain
// (e.g. "com", "de"), authenticating each request with a bearer token obtained
// from tokenSource.
func NewClient(domain string, tokenSource audibleauth.TokenSource, roundTripper http.RoundTripper) *Client {
	if roundTripper == nil {
		roundTripper = http.DefaultTransport
	}
	return &Client{
		URL: "https://api.audible." + domain,
		Client: &http.Client{
			Transport: &bearerAuthenticator{
				tokenSource: tokenSource,
				next:        roundTripper,
			},
		},
	}
}

// NewSignedClient returns a Client signing each request with the device private key
// (see [audibleauth.Signer]) and the ADP token. Some endpoints, notably content
// licensing, only accept signed requests.
func NewSignedClient(domain string, adpToken string, signer audibleauth.Signer, roundTripper http.RoundTripper) *Client {
	if roundTripper == nil {
		roundTripper = http.DefaultTransport
	}
	return &Client{
		URL: "https://api.audible." + domain,
		Client: &http.Client{
			Transport: &adpAuthenticator{
				signer:   signer,
				adpToken: adpToken,
				next:     roundTripper,
			},
		},
	}
}

func (c Client) GetURL() string {
	return c.URL
}
