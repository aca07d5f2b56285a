package audible

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/clambin/audibleclients/audible/audibleauth"
)

var _ http.RoundTripper = (*adpAuthenticator)(nil)

// adpAuthenticator signs every request with the device private key, the way the
// Audible iOS app does. The signature covers the method, path, date, body and the
// ADP token obtained during registration.
type adpAuthenticator struct {
	signer   audibleauth.Signer
	adpToken string
	next     http.RoundTripper
}

const adpSignatureAlgorithm = "SHA256withRSA:1.0"

func (a *adpAuthenticator) RoundTrip(request *http.Request) (*http.Response, error) {
	var body []byte
	if request.Body != nil {
		var err error
		if body, err = io.ReadAll(request.Body); err != nil {
			return nil, err
		}
		request.Body = io.NopCloser(bytes.NewReader(body))
	}

	path := request.URL.Path
	if request.URL.RawQuery != "" {
		path += "?" + request.URL.RawQuery
	}
	date := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	message := request.Method + "\n" + path + "\n" + date + "\n" + string(body) + "\n" + a.adpToken

	signature, err := a.signer.Sign([]byte(message))
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	request.Header.Set("x-adp-token", a.adpToken)
	request.Header.Set("x-adp-alg", adpSignatureAlgorithm)
	request.Header.Set("x-adp-signature", base64.StdEncoding.EncodeToString(signature)+":"+date)

	return a.next.RoundTrip(request)
}

var _ http.RoundTripper = (*bearerAuthenticator)(nil)

// bearerAuthenticator adds the bearer access token to every request.
type bearerAuthenticator struct {
	tokenSource audibleauth.TokenSource
	next        http.RoundTripper
}

func (a *bearerAuthenticator) RoundTrip(request *http.Request) (*http.Response, error) {
	token, err := a.tokenSource.Token(request.Context())
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return a.next.RoundTrip(request)
}
