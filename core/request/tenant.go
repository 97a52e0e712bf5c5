package request

import (
	"context"
	"time"

	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/auth"
)

// DefaultReadyTimeout is how long WaitForAuthReady waits when no timeout is given.
const DefaultReadyTimeout = 10 * time.Second

// NoTenant means "no scoping": the user sees every school.
const NoTenant = ""

// ResolveTenantID returns the school of a tenant-scoped user, or NoTenant.
func ResolveTenantID(usr auth.User) string {
	if !usr.IsTenantScoped() {
		return NoTenant
	}
	return usr.SchoolID
}

// WaitForAuthReady waits until the provider has a signed in user and returns its tenant id.
//
// A signed in platform admin returns immediately with NoTenant.
// core.ErrAuthTimeout is returned once timeout elapses (DefaultReadyTimeout when <= 0),
// ctx.Err() when ctx is done first, and core.ErrMissingTenant when a tenant-scoped user has no school.
func WaitForAuthReady(ctx context.Context, p auth.Provider, timeout time.Duration) (string, error) {
	if usr, ok := p.CurrentUser(); ok && usr.IsPlatformAdmin() {
		return NoTenant, nil
	}

	if timeout <= 0 {
		timeout = DefaultReadyTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-p.Ready():
	case <-timer.C:
		return NoTenant, core.ErrAuthTimeout
	case <-ctx.Done():
		return NoTenant, ctx.Err()
	}

	usr, ok := p.CurrentUser()
	if !ok { // signed out in between
		return NoTenant, core.ErrAuthTimeout
	}
	if !usr.IsTenantScoped() {
		return NoTenant, nil
	}
	if tenantID := ResolveTenantID(usr); tenantID != "" {
		return tenantID, nil
	}
	if sid := p.SchoolID(); sid != "" {
		return sid, nil
	}
	return NoTenant, core.ErrMissingTenant
}
