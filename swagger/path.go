package swagger

import (
	"slices"
	"strings"
)

// RewritePath converts colon-prefixed path segments to OpenAPI template
// expressions: "/pet/:id" -> "/pet/{id}". Only whole segments are
// rewritten, so repeated or overlapping parameter names are handled
// consistently and a rewritten path is left unchanged.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-templating
func RewritePath(path string) string {
	if !strings.Contains(path, ":") {
		return path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if name, ok := pathParamName(seg); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

// pathParams returns the colon-prefixed parameter names of a path in
// order of first appearance.
func pathParams(path string) []string {
	var names []string
	for seg := range strings.SplitSeq(path, "/") {
		if name, ok := pathParamName(seg); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func pathParamName(seg string) (string, bool) {
	if len(seg) > 1 && seg[0] == ':' {
		return seg[1:], true
	}
	return "", false
}
