// Package attribution keeps marketing campaign parameters attached to a visitor
// as they move from a landing page into the application funnel.
package attribution

import (
	"net/http"
	"net/url"
	"strings"
)

// Keys is the allow-list of attribution parameters, in output order.
var Keys = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
	"fbclid",
	"gclid",
	"ttclid",
	"campaign_id",
	"adset_id",
	"ad_id",
	"placement",
}

// placeholderBase lets relative destinations be parsed as URLs. It is stripped again
// before Merge returns.
const placeholderBase = "http://attribution.invalid"

type pair struct {
	key   string
	value string
}

// IsKey reports whether key is one of the allow-listed attribution parameters.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Extract returns the allow-listed parameters of rawQuery as "?k=v&k=v", ordered by
// Keys. Values are copied verbatim. Parameters with an empty value count as absent.
// The result is "" when nothing matched.
func Extract(rawQuery string) string {
	found := lookupAll(rawQuery)
	parts := make([]string, 0, len(found))
	for _, k := range Keys {
		if v, ok := found[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "?" + strings.Join(parts, "&")
}

// FromRequest extracts the attribution parameters carried by r's query string.
func FromRequest(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return Extract(r.URL.RawQuery)
}

// Lookup returns the decoded value of an allow-listed key in rawQuery.
func Lookup(rawQuery, key string) (string, bool) {
	if !IsKey(key) {
		return "", false
	}
	v, ok := lookupAll(rawQuery)[key]
	if !ok {
		return "", false
	}
	if decoded, err := url.QueryUnescape(v); err == nil {
		return decoded, true
	}
	return v, true
}

// Merge copies the attribution parameters found in source onto destination without
// overwriting any parameter destination already sets. The destination's path, other
// parameters (in their original order) and fragment are kept. Relative destinations
// stay relative. A destination that does not parse as a URL, such as "/a%zz", is
// returned unchanged without attribution.
func Merge(destination, source string) string {
	base, _ := url.Parse(placeholderBase)
	ref, err := url.Parse(destination)
	if err != nil {
		return destination
	}
	u := base.ResolveReference(ref)

	existing := make(map[string]struct{})
	for _, p := range split(u.RawQuery) {
		existing[p.key] = struct{}{}
		if decoded, err := url.QueryUnescape(p.key); err == nil {
			existing[decoded] = struct{}{}
		}
	}

	values := lookupAll(source)
	var added []string
	for _, k := range Keys {
		if _, ok := existing[k]; ok {
			continue
		}
		if v, ok := values[k]; ok {
			added = append(added, k+"="+v)
		}
	}
	if len(added) == 0 {
		return destination
	}

	query := strings.Join(added, "&")
	if u.RawQuery != "" {
		query = u.RawQuery + "&" + query
	}
	u.RawQuery = query

	if ref.IsAbs() || ref.Host != "" {
		return u.String()
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	out := path + "?" + u.RawQuery
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}

// lookupAll returns the first non-empty raw value of every allow-listed key.
func lookupAll(rawQuery string) map[string]string {
	found := make(map[string]string)
	for _, p := range split(rawQuery) {
		if p.value == "" || !IsKey(p.key) {
			continue
		}
		if _, seen := found[p.key]; !seen {
			found[p.key] = p.value
		}
	}
	return found
}

func split(rawQuery string) []pair {
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if i := strings.IndexByte(rawQuery, '#'); i >= 0 {
		rawQuery = rawQuery[:i]
	}
	if rawQuery == "" {
		return nil
	}
	var out []pair
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		if key == "" {
			continue
		}
		out = append(out, pair{key: key, value: value})
	}
	return out
}
