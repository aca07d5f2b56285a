package audibleauth

import (
	"fmt"
	"slices"
)

// A Locale describes an Audible marketplace: the country it serves, the top-level
// domain of its API endpoints and Amazon's marketplace identifier.
type Locale struct {
	CountryCode   string
	Domain        string
	MarketplaceID string
}

var locales = []Locale{
	{CountryCode: "us", Domain: "com", MarketplaceID: "AF2M0KC94RCEA"},
	{CountryCode: "ca", Domain: "ca", MarketplaceID: "A2CQZ5RBY40XE"},
	{CountryCode: "uk", Domain: "co.uk", MarketplaceID: "A2I9A3Q2GNFNGQ"},
	{CountryCode: "au", Domain: "com.au", MarketplaceID: "AN7EY7DTAW63G"},
	{CountryCode: "fr", Domain: "fr", MarketplaceID: "A2728XDNODOQ8T"},
	{CountryCode: "de", Domain: "de", MarketplaceID: "AN7V1F1VY261K"},
	{CountryCode: "jp", Domain: "co.jp", MarketplaceID: "A1QAP3MOU4173J"},
	{CountryCode: "it", Domain: "it", MarketplaceID: "A2N7FU2W2BU2ZC"},
	{CountryCode: "in", Domain: "in", MarketplaceID: "AJO3FBRUE6J4S"},
	{CountryCode: "es", Domain: "es", MarketplaceID: "ALMIKO4SZCSAR"},
	{CountryCode: "br", Domain: "com.br", MarketplaceID: "A10J1VAYUDTYRN"},
}

// Locales returns all known Audible marketplaces.
func Locales() []Locale {
	return slices.Clone(locales)
}

// LocaleFor returns the Locale for the given country code (e.g. "us", "de").
func LocaleFor(countryCode string) (Locale, error) {
	for _, locale := range locales {
		if locale.CountryCode == countryCode {
			return locale, nil
		}
	}
	return Locale{}, fmt.Errorf("unknown locale: %q", countryCode)
}
