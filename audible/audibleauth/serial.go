package audibleauth

import (
	"encoding/hex"
	"math/rand/v2"
)

const (
	serialLength  = 40
	serialCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateDeviceSerial returns a random 40-character device serial, drawn uniformly
// from uppercase letters and digits. Serials only need to be unique, not secret,
// so a non-cryptographic random source is fine.
func GenerateDeviceSerial() string {
	serial := make([]byte, serialLength)
	for i := range serial {
		serial[i] = serialCharset[rand.IntN(len(serialCharset))]
	}
	return string(serial)
}

// clientID derives the client id Amazon expects in auth_data: the hex encoding of
// "<serial>#<device type>".
func clientID(serial string, deviceType string) string {
	return hex.EncodeToString([]byte(serial + "#" + deviceType))
}
