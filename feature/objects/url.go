package objects

import (
	"net/url"
	"strings"
)

// publicURL builds the path-style public URL of an object.
//
// With public_url configured the base is assumed to map to the bucket root
// (CDN in front of one bucket), so the bucket name is omitted. Otherwise the
// URL is derived from the endpoint: scheme://endpoint/bucket/key.
func (s *Store) publicURL(bucket, key string) string {
	base := s.cfg.PublicURL
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		endpoint := strings.TrimPrefix(s.cfg.Endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		base = scheme + "://" + endpoint + "/" + bucket
	}
	return strings.TrimSuffix(base, "/") + "/" + escapeKey(key)
}

// escapeKey percent-encodes each path segment of a key while keeping the
// virtual hierarchy separators intact.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}
	return strings.Join(segments, "/")
}
