/*
Package audibleauth implements Amazon's private device-registration flow, which Audible's
applications use to authenticate themselves.

[Config.Register] registers a virtual device with an authorization code and PKCE code verifier,
and returns a [Token]: the bundle of credentials (bearer tokens, ADP token, device private key,
cookies) Amazon hands to a registered device. [Config.Deregister] invalidates a registered
device again, and [Config.RefreshToken] exchanges the bundle's refresh token for a new access
token once the old one expires.

[Config.TokenSource] wraps these operations in an approach similar to [oauth2]: it returns a
TokenSource that registers, caches, refreshes and (optionally) persists the credential bundle,
so callers only ever ask it for a valid Token.

[oauth2]: https://pkg.go.dev/golang.org/x/oauth2
*/
package audibleauth
