package audibleauth

import "time"

// Token is the bundle of credentials Amazon hands to a registered device. It is the
// result of [Config.Register]; this package does not retain it beyond handing it to
// the caller (or a [TokenSource]) for persistence.
type Token struct {
	// AccessToken is the bearer access token.
	AccessToken string `json:"access_token"`
	// RefreshToken is the bearer refresh token. See [Config.RefreshToken].
	RefreshToken string `json:"refresh_token"`
	// Expires is the absolute time at which AccessToken expires.
	Expires time.Time `json:"expires"`
	// ADPToken is used for device-level message signing. See [Signer].
	ADPToken string `json:"adp_token"`
	// DevicePrivateKey is the device's PEM-encoded RSA signing key.
	DevicePrivateKey string `json:"device_private_key"`
	// StoreAuthenticationCookie authenticates web-shop requests.
	StoreAuthenticationCookie string `json:"store_authentication_cookie,omitempty"`
	// WebsiteCookies maps cookie names to values. It is nil when the server
	// returned no cookie list, as opposed to an empty (but present) one.
	WebsiteCookies map[string]string `json:"website_cookies,omitempty"`
	// DeviceInfo describes the registered device, as reported by Amazon.
	DeviceInfo map[string]any `json:"device_info,omitempty"`
	// CustomerInfo describes the account the device was registered under.
	CustomerInfo map[string]any `json:"customer_info,omitempty"`
}

// Valid reports whether the token contains an unexpired access token.
func (t Token) Valid() bool {
	return t.AccessToken != "" && time.Now().Before(t.Expires)
}
