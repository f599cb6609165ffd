package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://example.com/#/a/praia", PublicURL("https://example.com/", "praia"))
	assert.Equal(t, "https://example.com/#/a/praia", PublicURL("https://example.com", "praia"))
	// changing only the slug changes only the fragment
	a := PublicURL("https://example.com/", "praia")
	b := PublicURL("https://example.com/", "serra")
	assert.Equal(t, strings.TrimSuffix(a, "praia"), strings.TrimSuffix(b, "serra"))
}

func TestDeriveIsDeterministic(t *testing.T) {
	first, err := Derive("https://example.com/", "eu-e-voce")
	assert.NoError(t, err)
	second, err := Derive("https://example.com/", "eu-e-voce")
	assert.NoError(t, err)
	assert.Equal(t, first.PublicURL, second.PublicURL)
	assert.Equal(t, first.QRPayload, second.QRPayload)
	assert.NotEmpty(t, first.QRPayload)
	// PNG magic - the payload is a ready-to-serve image
	assert.True(t, strings.HasPrefix(string(first.QRPayload), "\x89PNG"))
}

func TestDeriveDifferentSlugsDiffer(t *testing.T) {
	a, err := Derive("https://example.com/", "praia")
	assert.NoError(t, err)
	b, err := Derive("https://example.com/", "praia-2")
	assert.NoError(t, err)
	assert.NotEqual(t, a.PublicURL, b.PublicURL)
	assert.NotEqual(t, a.QRPayload, b.QRPayload)
}

func TestCopyTextEmbedsCurrentURL(t *testing.T) {
	url := PublicURL("https://example.com/", "nosso-natal")
	text := CopyText(url)
	assert.Contains(t, text, url)
	// renaming the slug must change the embedded link
	renamed := PublicURL("https://example.com/", "nosso-natal-2025")
	assert.NotContains(t, text, renamed)
	assert.Contains(t, CopyText(renamed), renamed)
}
