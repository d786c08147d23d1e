package inventory

import (
	"net/url"
	"strings"
)

// LocationPath converts a code-source location reported by the
// instrumentation layer into a file-system path.
//
// Accepted forms:
//
//	/opt/app/lib/foo.jar
//	file:/opt/app/lib/foo.jar
//	file:///opt/app/lib/foo%20bar.jar
//	jar:file:/opt/app/app.war!/WEB-INF/lib/foo.jar
//
// For jar: URLs the outer archive is returned. Percent-escapes are decoded.
// Locations with any other scheme, or that are empty, report false.
func LocationPath(location string) (string, bool) {
	if location == "" {
		return "", false
	}

	if rest, ok := strings.CutPrefix(location, "jar:"); ok {
		outer, _, _ := strings.Cut(rest, "!/")
		return LocationPath(outer)
	}

	if !strings.HasPrefix(location, "file:") {
		if strings.Contains(location, "://") {
			return "", false
		}
		return location, true
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
	}
	if path == "" {
		return "", false
	}
	return path, true
}
