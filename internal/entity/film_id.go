package entity

import "regexp"

// FilmID is an external film identifier, e.g. "tt0133093".
type FilmID string

var filmIDPattern = regexp.MustCompile(`tt\d+`)

// FilmIDFromURL recovers the first IMDb-style identifier found in a page URL.
func FilmIDFromURL(rawURL string) (FilmID, bool) {
	m := filmIDPattern.FindString(rawURL)
	if m == "" {
		return "", false
	}
	return FilmID(m), true
}
