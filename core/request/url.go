package request

import (
	"net/url"
	"strings"
)

// schoolSegment marks an endpoint already scoped to a tenant.
const schoolSegment = "/school/"

// Filters are the query parameters of a listing. Empty values are skipped.
type Filters map[string]string

func (f Filters) values() url.Values {
	v := make(url.Values, len(f))
	for key, val := range f {
		if key != "" && val != "" {
			v.Set(key, val)
		}
	}
	return v
}

// BuildScopedURL scopes endpoint to tenantID and appends filters as a query string (keys sorted).
//
// The `/school/{tenantID}` segment is only appended when tenantID is set and the endpoint
// does not already embed a school segment, so building an already scoped URL again is a no-op.
//
//	BuildScopedURL("/api/student", "S1", Filters{"status": "enrolled"}) == "/api/student/school/S1?status=enrolled"
func BuildScopedURL(endpoint, tenantID string, filters Filters) string {
	path, rawQuery := endpoint, ""
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		path, rawQuery = endpoint[:i], endpoint[i+1:]
	}

	if tenantID != NoTenant && !strings.Contains(path, schoolSegment) {
		path = strings.TrimRight(path, "/") + schoolSegment + url.PathEscape(tenantID)
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil { // keep what we were given
		if extra := filters.values().Encode(); extra != "" {
			rawQuery += "&" + extra
		}
		return path + "?" + rawQuery
	}
	for key, vals := range filters.values() {
		query[key] = vals
	}
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// JoinPath joins an endpoint and path segments with single slashes, escaping each segment.
func JoinPath(endpoint string, segments ...string) string {
	p := strings.TrimRight(endpoint, "/")
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		p += "/" + url.PathEscape(strings.Trim(seg, "/"))
	}
	return p
}
