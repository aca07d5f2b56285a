package audibleauth

import (
	"reflect"
	"testing"
)

func TestCodecs(t *testing.T) {
	payload := registrationRequest{
		RequestedTokenType: []string{"bearer", "mac_dms"},
		Cookies:            requestCookies{WebsiteCookies: []websiteCookie{}, Domain: ".amazon.com"},
		RegistrationData: registrationData{
			Domain:       "Device",
			DeviceSerial: "SERIAL",
			DeviceType:   DefaultDevice.Type,
		},
		AuthData: authData{
			ClientID:          clientID("SERIAL", DefaultDevice.Type),
			AuthorizationCode: "code",
			CodeVerifier:      "verifier",
			CodeAlgorithm:     "SHA-256",
			ClientDomain:      "DeviceLegacy",
		},
		RequestedExtensions: []string{"device_info", "customer_info"},
	}

	codecs := map[string]Codec{
		"encoding/json": JSONCodec{},
		"goccy/go-json": GoJSONCodec{},
	}

	// both backends must produce equivalent wire bodies
	bodies := make(map[string]map[string]any, len(codecs))
	for name, codec := range codecs {
		t.Run(name, func(t *testing.T) {
			data, err := codec.Marshal(payload)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			var roundTrip registrationRequest
			if err = codec.Unmarshal(data, &roundTrip); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if !reflect.DeepEqual(payload, roundTrip) {
				t.Errorf("payload did not survive the round trip: %+v", roundTrip)
			}
			var generic map[string]any
			if err = codec.Unmarshal(data, &generic); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			bodies[name] = generic
		})
	}
	if !reflect.DeepEqual(bodies["encoding/json"], bodies["goccy/go-json"]) {
		t.Errorf("codecs disagree on the wire body:\n%v\n%v", bodies["encoding/json"], bodies["goccy/go-json"])
	}
}
