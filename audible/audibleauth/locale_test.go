package audibleauth

import "testing"

func TestLocaleFor(t *testing.T) {
	locale, err := LocaleFor("de")
	if err != nil {
		t.Fatalf("LocaleFor error: %v", err)
	}
	if locale.Domain != "de" || locale.MarketplaceID != "AN7V1F1VY261K" {
		t.Fatalf("unexpected locale: %+v", locale)
	}

	if _, err = LocaleFor("xx"); err == nil {
		t.Fatal("expected error for unknown locale")
	}
}

func TestLocales(t *testing.T) {
	all := Locales()
	if len(all) == 0 {
		t.Fatal("expected locales")
	}
	seen := make(map[string]struct{}, len(all))
	for _, locale := range all {
		if locale.CountryCode == "" || locale.Domain == "" || locale.MarketplaceID == "" {
			t.Errorf("incomplete locale: %+v", locale)
		}
		if _, ok := seen[locale.CountryCode]; ok {
			t.Errorf("duplicate country code: %s", locale.CountryCode)
		}
		seen[locale.CountryCode] = struct{}{}
	}
}

func TestConfig_WithLocale(t *testing.T) {
	locale, _ := LocaleFor("uk")
	cfg := DefaultConfig().WithLocale(locale)
	if got := cfg.host(); got != "https://api.amazon.co.uk" {
		t.Fatalf("unexpected host: %s", got)
	}
}
