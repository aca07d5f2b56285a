package audibleauth

// Device describes the virtual device presented to Amazon during registration.
// Amazon validates these against its catalog of known device types, so the defaults
// mimic the Audible iOS app. Override them only if you know what you're doing.
type Device struct {
	// Type is Amazon's device type code. Passed as registration_data.device_type.
	Type string
	// Name is the device name template shown in Amazon's device list.
	Name string
	// Model is the device model. Passed as registration_data.device_model.
	Model string
	// AppName is the name of the client application.
	AppName string
	// AppVersion is the marketing version of the client application.
	AppVersion string
	// SoftwareVersion is the build number of the client application.
	SoftwareVersion string
	// OSVersion is the operating system version of the device.
	OSVersion string
}

// DefaultDevice is the virtual device identity of the Audible iOS app.
var DefaultDevice = Device{
	Type:            "A2CZJZGLK2JJVM",
	Name:            "%FIRST_NAME%%FIRST_NAME_POSSESSIVE% %DUPE_STRATEGY_1ST% Audible for iPhone",
	Model:           "iPhone",
	AppName:         "Audible",
	AppVersion:      "3.56.2",
	SoftwareVersion: "35602678",
	OSVersion:       "15.0.0",
}

// Config contains the configuration required to authenticate with Amazon's device API.
type Config struct {
	// Device is the virtual device identity sent during registration.
	Device Device
	// Codec encodes and decodes request and response bodies.
	// Defaults to [JSONCodec].
	Codec Codec
	// URL overrides the endpoint URL derived from Domain and UsernameLogin.
	// Mainly used for testing; leave blank otherwise.
	URL string
	// Domain is the marketplace's top-level domain, e.g. "com", "de", "co.uk".
	// See [LocaleFor] to look it up by country code.
	Domain string
	// Serial is the device serial to register. When blank, each [Config.Register]
	// call generates a fresh random serial, so that deregistering this device
	// does not affect devices registered by other processes on the same account.
	Serial string
	// UsernameLogin routes requests to api.audible.<Domain> instead of
	// api.amazon.<Domain>. Set it for username-based (Audible-only) accounts.
	UsernameLogin bool
}

// DefaultConfig returns a Config for the US marketplace with the default device identity.
func DefaultConfig() Config {
	return Config{
		Device: DefaultDevice,
		Domain: "com",
		Codec:  JSONCodec{},
	}
}

// WithDevice sets the virtual device identity sent during registration.
func (c Config) WithDevice(device Device) Config {
	c.Device = device
	return c
}

// WithDomain sets the marketplace's top-level domain.
func (c Config) WithDomain(domain string) Config {
	c.Domain = domain
	return c
}

// WithLocale sets the marketplace's top-level domain from a [Locale].
func (c Config) WithLocale(locale Locale) Config {
	c.Domain = locale.Domain
	return c
}

// WithSerial sets a fixed device serial. Normally the serial should be left blank,
// so each registration gets its own.
func (c Config) WithSerial(serial string) Config {
	c.Serial = serial
	return c
}

// WithUsernameLogin routes requests to api.audible.<Domain> for username-based accounts.
func (c Config) WithUsernameLogin(usernameLogin bool) Config {
	c.UsernameLogin = usernameLogin
	return c
}

// WithCodec sets the JSON codec used for request and response bodies.
func (c Config) WithCodec(codec Codec) Config {
	c.Codec = codec
	return c
}

// host returns the base URL of the auth endpoints.
func (c Config) host() string {
	if c.URL != "" {
		return c.URL
	}
	if c.UsernameLogin {
		return "https://api.audible." + c.Domain
	}
	return "https://api.amazon." + c.Domain
}

// cookiesDomain is the cookie domain declared in the registration payload.
func (c Config) cookiesDomain() string {
	return ".amazon." + c.Domain
}

func (c Config) codec() Codec {
	if c.Codec != nil {
		return c.Codec
	}
	return JSONCodec{}
}
