package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScopedURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		tenantID string
		filters  Filters
		want     string
	}{
		{
			name:     "scoped with filter",
			endpoint: "/api/student",
			tenantID: "S1",
			filters:  Filters{"status": "enrolled"},
			want:     "/api/student/school/S1?status=enrolled",
		},
		{name: "no tenant", endpoint: "/api/student", want: "/api/student"},
		{name: "no tenant with filters", endpoint: "/api/result", filters: Filters{"studentId": "st1"}, want: "/api/result?studentId=st1"},
		{name: "trailing slash", endpoint: "/api/course/", tenantID: "S1", want: "/api/course/school/S1"},
		{
			name:     "keys sorted and empty values skipped",
			endpoint: "/api/result",
			tenantID: "S1",
			filters:  Filters{"studentId": "st1", "moduleId": "m1", "grade": ""},
			want:     "/api/result/school/S1?moduleId=m1&studentId=st1",
		},
		{
			name:     "already scoped",
			endpoint: "/api/student/school/S1",
			tenantID: "S1",
			want:     "/api/student/school/S1",
		},
		{
			name:     "existing query is merged",
			endpoint: "/api/student?status=enrolled",
			tenantID: "S1",
			filters:  Filters{"intakeCourseId": "ic1"},
			want:     "/api/student/school/S1?intakeCourseId=ic1&status=enrolled",
		},
		{name: "tenant is escaped", endpoint: "/api/student", tenantID: "a b", want: "/api/student/school/a%20b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildScopedURL(tt.endpoint, tt.tenantID, tt.filters))
		})
	}
}

func TestBuildScopedURL_idempotent(t *testing.T) {
	endpoints := []string{"/api/student", "/api/result/", "/api/vehicle?active=true"}
	tenants := []string{"", "S1", "school-42"}
	filters := []Filters{nil, {"status": "enrolled"}, {"a": "1", "b": "2"}}

	for _, endpoint := range endpoints {
		for _, tenantID := range tenants {
			for _, f := range filters {
				once := BuildScopedURL(endpoint, tenantID, f)
				twice := BuildScopedURL(once, tenantID, f)
				if once != twice {
					t.Errorf("BuildScopedURL(%q, %q, %v) is not idempotent: %q != %q", endpoint, tenantID, f, once, twice)
				}
			}
		}
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/api/student/st1", JoinPath("/api/student", "st1"))
	assert.Equal(t, "/api/student/st1", JoinPath("/api/student/", "/st1/"))
	assert.Equal(t, "/api/student", JoinPath("/api/student", ""))
	assert.Equal(t, "/api/intake-course/ic1/enrollment", JoinPath("/api/intake-course", "ic1", "enrollment"))
}
