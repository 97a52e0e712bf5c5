package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func isReady(p Provider) bool {
	select {
	case <-p.Ready():
		return true
	default:
		return false
	}
}

func TestSession_lifecycle(t *testing.T) {
	sess := NewSession()
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, isReady(sess))
	assert.Equal(t, "", sess.SchoolID())

	sess.SignIn(User{ID: "u1", Role: RoleSchoolAdmin, SchoolID: "S1"}, "tok")
	assert.True(t, sess.IsAuthenticated())
	assert.True(t, isReady(sess))
	assert.Equal(t, "S1", sess.SchoolID())
	assert.Equal(t, "tok", sess.Token())

	// signing in twice does not panic on the closed channel
	sess.SignIn(User{ID: "u2", Role: RoleStudent, SchoolID: "S2"})
	usr, _ := sess.CurrentUser()
	assert.Equal(t, "u2", usr.ID)

	sess.SignOut()
	assert.False(t, sess.IsAuthenticated())
	assert.False(t, isReady(sess), "readiness must be re-armed on sign out")
	assert.Equal(t, "", sess.Token())

	sess.SignIn(User{ID: "u3", Role: RolePlatformAdmin})
	assert.True(t, isReady(sess))
}

func TestRole_IsTenantScoped(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RolePlatformAdmin, false},
		{RoleSchoolAdmin, true},
		{RoleStudent, true},
		{RoleLecturer, false},
		{Role("unknown"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.IsTenantScoped())
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" SchoolAdmin ")
	assert.True(t, ok)
	assert.Equal(t, RoleSchoolAdmin, r)

	_, ok = ParseRole("janitor")
	assert.False(t, ok)
}
