// Package audible provides a client for the Audible content API. It authenticates
// with the credential bundle obtained from the audibleauth package, either as a
// bearer token or by signing each request with the device private key.
package audible
