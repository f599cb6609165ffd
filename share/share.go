// Package share derives the public link, QR payload and copy-paste text for
// an album. Everything here is a pure function of the base location and the
// album slug, so artifacts can be recomputed at any time and always come out
// identical.
package share

import (
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// Artifact is never persisted - it is recomputed from album state on demand.
type Artifact struct {
	PublicURL string
	QRPayload []byte
}

// The hosting entry point is a single static document with client-side
// routing, hence the fragment form.
const fragmentPrefix = "#/a/"

// qrCache holds already encoded payloads keyed by URL. Safe because encoding
// is deterministic; this only saves re-encoding the same PNG.
var qrCache = cmap.New[[]byte]()

// PublicURL returns base + "#/a/" + slug. The base is used as-is apart from
// ensuring a single separator, so changing the slug never changes the base
// part of the link.
func PublicURL(base, slug string) string {
	return strings.TrimSuffix(base, "/") + "/" + fragmentPrefix + slug
}

// Derive computes the share artifact for an album slug. The QR payload
// encodes the public URL verbatim - no shortening or redirects.
func Derive(base, slug string) (Artifact, error) {
	url := PublicURL(base, slug)
	if png, ok := qrCache.Get(url); ok {
		return Artifact{PublicURL: url, QRPayload: png}, nil
	}
	png, err := qrcode.Encode(url, qrcode.Medium, qrImageSize)
	if err != nil {
		return Artifact{}, err
	}
	qrCache.Set(url, png)
	return Artifact{PublicURL: url, QRPayload: png}, nil
}

// CopyText wraps a freshly derived public URL in the fixed message template
// shown to the owner. Callers must pass the current URL, never a cached one,
// so a renamed slug is reflected immediately.
func CopyText(publicURL string) string {
	return "✨ Separei um álbum de recordações pra você:\n" +
		publicURL + "\n\n" +
		"Depois me conta qual foto você mais gostou 💛"
}
