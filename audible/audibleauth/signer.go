package audibleauth

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwk"
)

// A Signer signs byte messages with the device private key obtained during registration.
// Amazon's content endpoints require each request to carry such a signature (see the
// audible package).
//
// Two constructors are provided, differing only in how they import the PEM key:
// [NewPKCS1Signer] uses the standard library, [NewJWKSigner] goes through jwx.
// Both produce identical signatures; pick whichever backend the embedding application
// already uses.
type Signer interface {
	// Sign returns the RSA PKCS#1 v1.5 signature over the SHA-256 digest of message.
	Sign(message []byte) ([]byte, error)
}

var _ Signer = (*rsaSigner)(nil)

type rsaSigner struct {
	key *rsa.PrivateKey
}

func (s *rsaSigner) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return rsa.SignPKCS1v15(nil, s.key, crypto.SHA256, digest[:])
}

// NewPKCS1Signer imports a PEM-encoded RSA private key (as found in
// [Token].DevicePrivateKey) using the standard library and returns a Signer.
func NewPKCS1Signer(devicePrivateKey string) (Signer, error) {
	block, _ := pem.Decode([]byte(devicePrivateKey))
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// Amazon normally sends PKCS#1, but accept PKCS#8 as well
		parsed, pkcs8Err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if pkcs8Err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		var ok bool
		if key, ok = parsed.(*rsa.PrivateKey); !ok {
			return nil, errors.New("not an RSA private key")
		}
	}
	return &rsaSigner{key: key}, nil
}

// NewJWKSigner imports a PEM-encoded RSA private key through jwx's jwk package and
// returns a Signer. It is interchangeable with [NewPKCS1Signer].
func NewJWKSigner(devicePrivateKey string) (Signer, error) {
	key, err := jwk.ParseKey([]byte(devicePrivateKey), jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	var rsaKey rsa.PrivateKey
	if err = jwk.Export(key, &rsaKey); err != nil {
		return nil, fmt.Errorf("export private key: %w", err)
	}
	return &rsaSigner{key: &rsaKey}, nil
}
