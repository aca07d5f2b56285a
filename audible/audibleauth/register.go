package audibleauth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type registrationRequest struct {
	RequestedTokenType  []string         `json:"requested_token_type"`
	Cookies             requestCookies   `json:"cookies"`
	RegistrationData    registrationData `json:"registration_data"`
	AuthData            authData         `json:"auth_data"`
	RequestedExtensions []string         `json:"requested_extensions"`
}

type requestCookies struct {
	WebsiteCookies []websiteCookie `json:"website_cookies"`
	Domain         string          `json:"domain"`
}

// websiteCookie is a single cookie as Amazon sends it: capitalized keys, values
// sometimes wrapped in literal double quotes.
type websiteCookie struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type registrationData struct {
	Domain          string `json:"domain"`
	AppVersion      string `json:"app_version"`
	DeviceSerial    string `json:"device_serial"`
	DeviceType      string `json:"device_type"`
	DeviceName      string `json:"device_name"`
	OSVersion       string `json:"os_version"`
	SoftwareVersion string `json:"software_version"`
	DeviceModel     string `json:"device_model"`
	AppName         string `json:"app_name"`
}

type authData struct {
	ClientID          string `json:"client_id"`
	AuthorizationCode string `json:"authorization_code"`
	CodeVerifier      string `json:"code_verifier"`
	CodeAlgorithm     string `json:"code_algorithm"`
	ClientDomain      string `json:"client_domain"`
}

type registrationResponse struct {
	Response struct {
		Success struct {
			Extensions struct {
				DeviceInfo   map[string]any `json:"device_info"`
				CustomerInfo map[string]any `json:"customer_info"`
			} `json:"extensions"`
			Tokens struct {
				Bearer struct {
					AccessToken  string `json:"access_token"`
					RefreshToken string `json:"refresh_token"`
					ExpiresIn    string `json:"expires_in"`
				} `json:"bearer"`
				MacDMS struct {
					DevicePrivateKey string `json:"device_private_key"`
					ADPToken         string `json:"adp_token"`
				} `json:"mac_dms"`
				WebsiteCookies            []websiteCookie `json:"website_cookies"`
				StoreAuthenticationCookie struct {
					Cookie string `json:"cookie"`
				} `json:"store_authentication_cookie"`
			} `json:"tokens"`
		} `json:"success"`
	} `json:"response"`
	RequestID string `json:"request_id"`
}

// Register registers a virtual device with Amazon and returns the resulting [Token].
// code is the authorization code obtained from the OAuth login flow; codeVerifier is
// the PKCE verifier that was used to request it.
//
// Each call sends exactly one POST to /auth/register; there are no retries. A rejected
// registration is returned as an *[AuthError] carrying Amazon's response body.
func (c Config) Register(ctx context.Context, code string, codeVerifier []byte) (Token, error) {
	serial := c.Serial
	if serial == "" {
		serial = GenerateDeviceSerial()
	}

	payload := registrationRequest{
		RequestedTokenType: []string{"bearer", "mac_dms", "website_cookies", "store_authentication_cookie"},
		Cookies: requestCookies{
			WebsiteCookies: []websiteCookie{},
			Domain:         c.cookiesDomain(),
		},
		RegistrationData: registrationData{
			Domain:          "Device",
			AppVersion:      c.Device.AppVersion,
			DeviceSerial:    serial,
			DeviceType:      c.Device.Type,
			DeviceName:      c.Device.Name,
			OSVersion:       c.Device.OSVersion,
			SoftwareVersion: c.Device.SoftwareVersion,
			DeviceModel:     c.Device.Model,
			AppName:         c.Device.AppName,
		},
		AuthData: authData{
			ClientID:          clientID(serial, c.Device.Type),
			AuthorizationCode: code,
			CodeVerifier:      string(codeVerifier),
			CodeAlgorithm:     "SHA-256",
			ClientDomain:      "DeviceLegacy",
		},
		RequestedExtensions: []string{"device_info", "customer_info"},
	}
	body, err := c.codec().Marshal(payload)
	if err != nil {
		return Token{}, fmt.Errorf("encode: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.host()+"/auth/register", bytes.NewReader(body), http.StatusOK)
	if err != nil {
		return Token{}, fmt.Errorf("register: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, fmt.Errorf("read response: %w", err)
	}
	var response registrationResponse
	if err = c.codec().Unmarshal(raw, &response); err != nil {
		return Token{}, fmt.Errorf("decode: %w", err)
	}
	return flattenRegistration(response, time.Now())
}

// flattenRegistration flattens Amazon's nested registration response into a Token.
// now is the capture time: Expires = now + the server-supplied expires_in.
func flattenRegistration(response registrationResponse, now time.Time) (Token, error) {
	tokens := response.Response.Success.Tokens
	// Amazon sends expires_in as a JSON string
	expiresIn, err := strconv.ParseInt(tokens.Bearer.ExpiresIn, 10, 64)
	if err != nil {
		return Token{}, fmt.Errorf("invalid expires_in %q: %w", tokens.Bearer.ExpiresIn, err)
	}
	return Token{
		AccessToken:               tokens.Bearer.AccessToken,
		RefreshToken:              tokens.Bearer.RefreshToken,
		Expires:                   now.Add(time.Duration(expiresIn) * time.Second),
		ADPToken:                  tokens.MacDMS.ADPToken,
		DevicePrivateKey:          tokens.MacDMS.DevicePrivateKey,
		StoreAuthenticationCookie: tokens.StoreAuthenticationCookie.Cookie,
		WebsiteCookies:            flattenCookies(tokens.WebsiteCookies),
		DeviceInfo:                response.Response.Success.Extensions.DeviceInfo,
		CustomerInfo:              response.Response.Success.Extensions.CustomerInfo,
	}, nil
}

// flattenCookies converts Amazon's cookie list into a name/value map, stripping the
// literal double quotes Amazon wraps around some values. It returns nil when the
// server sent no list at all, so callers can tell "no cookies returned" from an
// empty cookie set.
func flattenCookies(cookies []websiteCookie) map[string]string {
	if cookies == nil {
		return nil
	}
	flattened := make(map[string]string, len(cookies))
	for _, cookie := range cookies {
		flattened[cookie.Name] = strings.ReplaceAll(cookie.Value, `"`, "")
	}
	return flattened
}

// Deregister invalidates a previously registered device. With deregisterAll set, it
// invalidates all devices registered under the account instead; use with care, as
// that logs out every Audible application of the account.
//
// On success, it returns Amazon's response body as-is: callers typically only need
// the confirmation and request id.
func (c Config) Deregister(ctx context.Context, accessToken string, deregisterAll bool) (map[string]any, error) {
	body, err := c.codec().Marshal(map[string]bool{"deregister_all_existing_accounts": deregisterAll})
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, c.host()+"/auth/deregister", bytes.NewReader(body), http.StatusOK, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	})
	if err != nil {
		return nil, fmt.Errorf("deregister: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var response map[string]any
	if err = c.codec().Unmarshal(raw, &response); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return response, nil
}

// RefreshToken exchanges the bundle's refresh token for a new access token. It returns
// a copy of token with AccessToken and Expires replaced; the rest of the bundle is
// left intact.
func (c Config) RefreshToken(ctx context.Context, token Token) (Token, error) {
	if token.RefreshToken == "" {
		return Token{}, ErrNoRefreshToken
	}

	v := make(url.Values)
	v.Set("app_name", c.Device.AppName)
	v.Set("app_version", c.Device.AppVersion)
	v.Set("source_token", token.RefreshToken)
	v.Set("requested_token_type", "access_token")
	v.Set("source_token_type", "refresh_token")

	resp, err := c.do(ctx, http.MethodPost, c.host()+"/auth/token", strings.NewReader(v.Encode()), http.StatusOK, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	})
	if err != nil {
		return Token{}, fmt.Errorf("refresh: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Token{}, fmt.Errorf("read response: %w", err)
	}
	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err = c.codec().Unmarshal(raw, &response); err != nil {
		return Token{}, fmt.Errorf("decode: %w", err)
	}
	token.AccessToken = response.AccessToken
	token.Expires = time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
	return token, nil
}
