// Package resolve decides which candidate evidence-image reference, if
// any, is safe to hand to a rendering sink.
package resolve

import (
	"net/url"
	"strings"
)

// trustedImageHosts is the compiled-in allow-list for absolute https
// sources. Exact hosts and their subdomains pass; every other host is
// rejected no matter how innocuous it looks. Extending this list is a
// reviewed build-time change, not a configuration option.
var trustedImageHosts = []string{
	"citelens.io",
	"citelens.app",
}

// allowedDataSubtypes are the raster image subtypes permitted in data
// URIs. image/svg+xml is excluded: SVG can embed script and event
// handlers even when served as an image.
var allowedDataSubtypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// maxDecodePasses bounds iterative percent-decoding of relative paths.
// A path that is still shrinking after this many passes is rejected.
const maxDecodePasses = 5

// debugLogf, when non-nil, receives a diagnostic line for every
// rejected candidate (development builds only). Production output must
// never surface the raw rejected string.
var debugLogf func(format string, args ...interface{})

// SetDebugLogger installs a rejection diagnostic logger. Pass nil to
// silence diagnostics again.
func SetDebugLogger(logf func(format string, args ...interface{})) {
	debugLogf = logf
}

// IsTrustedImageSource reports whether a candidate image reference is
// safe to place in a rendering sink. It is the single choke point for
// that decision: every tier's candidate goes through here first.
//
// Pure and deterministic; the default answer is reject.
func IsTrustedImageSource(candidate string) bool {
	s := strings.TrimSpace(candidate)
	if s == "" {
		return rejected(s, "empty candidate")
	}

	// Protocol-relative references resolve to whatever host controls
	// the page's base URL and must never be trusted implicitly.
	if strings.HasPrefix(s, "//") {
		return rejected(s, "protocol-relative reference")
	}

	if strings.HasPrefix(strings.ToLower(s), "data:") {
		if isAllowedDataURI(s) {
			return true
		}
		return rejected(s, "disallowed data URI subtype")
	}

	u, err := url.Parse(s)
	if err != nil {
		// Not a parseable absolute URI; a plain relative path is
		// expected to land here.
		return isSafeRelativePath(s)
	}

	switch strings.ToLower(u.Scheme) {
	case "":
		return isSafeRelativePath(s)
	case "https":
		if isTrustedHost(u.Hostname()) {
			return true
		}
		return rejected(s, "https host not on allow-list")
	case "http":
		// Plaintext is a development convenience for localhost only.
		if strings.EqualFold(u.Hostname(), "localhost") {
			return true
		}
		return rejected(s, "plaintext http to non-localhost host")
	default:
		// javascript:, vbscript:, file:, blob: and anything else.
		return rejected(s, "scheme not allowed: "+u.Scheme)
	}
}

// isAllowedDataURI checks the mediatype of a data URI against the
// raster subtype allow-list. Parameters after ';' never influence the
// decision; sinks interpret only the subtype.
func isAllowedDataURI(s string) bool {
	rest := s[len("data:"):]
	end := len(rest)
	if i := strings.IndexAny(rest, ";,"); i >= 0 {
		end = i
	}
	mediatype := strings.ToLower(strings.TrimSpace(rest[:end]))
	return allowedDataSubtypes[mediatype]
}

// isTrustedHost reports whether host exactly equals, or is a subdomain
// of, an allow-listed host.
func isTrustedHost(host string) bool {
	host = strings.ToLower(host)
	if host == "" {
		return false
	}
	for _, trusted := range trustedImageHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

// isSafeRelativePath accepts root-relative paths that contain no
// traversal segment. Decoding happens before the traversal check, and
// repeats until the string is stable, so neither %2e%2e nor a
// double-encoded %252e%252e can slip past the filter.
func isSafeRelativePath(p string) bool {
	if !strings.HasPrefix(p, "/") {
		return rejected(p, "not a root-relative path")
	}

	decoded := p
	stable := false
	for i := 0; i < maxDecodePasses; i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil {
			// Cannot prove what the path decodes to.
			return rejected(p, "undecodable percent escape")
		}
		if next == decoded {
			stable = true
			break
		}
		decoded = next
	}
	if !stable {
		return rejected(p, "percent decoding did not converge")
	}

	for _, segment := range strings.FieldsFunc(decoded, isPathSeparator) {
		if segment == ".." {
			return rejected(p, "traversal segment in path")
		}
	}
	return true
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// rejected logs the rejection reason when diagnostics are enabled and
// always returns false.
func rejected(candidate, reason string) bool {
	if debugLogf != nil {
		debugLogf("rejected image source %q: %s", candidate, reason)
	}
	return false
}
