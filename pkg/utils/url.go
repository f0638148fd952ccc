package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// HashURL creates a SHA256 hash of a URL string for use as a Redis key.
func HashURL(rawURL string) string {
	h := sha256.New()
	h.Write([]byte(rawURL))
	return hex.EncodeToString(h.Sum(nil))
}

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// ResolveAll makes every input absolute against base. Absolute inputs are
// returned unchanged; blank inputs are kept so positions still line up.
func ResolveAll(base string, inputs []string) ([]string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(inputs))
	for i, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		abs, err := ToAbsoluteURL(b, in)
		if err != nil {
			return nil, err
		}
		out[i] = abs
	}
	return out, nil
}
