package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                          "en",
		"fr":                        "fr",
		"FR":                        "fr",
		"fr-CA":                     "fr",
		"fr-CA,fr;q=0.9,en;q=0.8":   "fr",
		"de-DE,de;q=0.9":            "en",
		"de;q=0.9, fr;q=0.8":        "fr",
		"es, pt, it":                "en",
		" en-US , en ; q=0.5":       "en",
	}
	for header, want := range cases {
		assert.Equal(t, want, NormalizeLocale(header), "header %q", header)
	}
}

func TestLocaleFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	assert.Equal(t, "fr", LocaleFromRequest(req))

	assert.Equal(t, "en", LocaleFromRequest(nil))
}

func TestResolver(t *testing.T) {
	en := NewResolver("en")
	fr := NewResolver("fr")

	assert.NotEqual(t,
		en.Resolve("errors.invalidCredentials", nil),
		fr.Resolve("errors.invalidCredentials", nil),
	)

	// substitution
	msg := en.Resolve("login.verifyEmail", map[string]any{"email": "user@example.com"})
	assert.Contains(t, msg, "user@example.com")

	// unknown locale falls back to the default catalog
	assert.Equal(t,
		en.Resolve("errors.generic", nil),
		NewResolver("xx").Resolve("errors.generic", nil),
	)

	// unknown key degrades to the key itself
	assert.Equal(t, "no.such.key", en.Resolve("no.such.key", nil))
}

// Every key present in the default catalog has a counterpart in each locale.
func TestCatalogParity(t *testing.T) {
	for locale, messages := range catalog {
		if locale == DefaultLocale {
			continue
		}
		for key := range catalog[DefaultLocale] {
			_, ok := messages[key]
			assert.True(t, ok, "locale %s is missing key %s", locale, key)
		}
	}
}
