package sanitizer

import (
	"net/url"
	"path"
)

// RemoveQueryParams drops the query string of rawURL. Unparsable input is
// returned unchanged.
func RemoveQueryParams(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.ForceQuery = false
	return u.String()
}

// RemoveFragment drops the fragment of rawURL. Unparsable input is returned
// unchanged.
func RemoveFragment(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// FileName returns the last path element of rawURL, without query or
// fragment. It returns rawURL when the path has no file name.
func FileName(rawURL string) string {
	u, err := url.Parse(RemoveFragment(RemoveQueryParams(rawURL)))
	if err != nil {
		return rawURL
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return rawURL
	}
	if name, err := url.PathUnescape(base); err == nil {
		return name
	}
	return base
}
