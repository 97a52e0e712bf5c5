package auth

import (
	"testing"
	"time"
)

func TestGenerateParseToken(t *testing.T) {
	key := []byte("secret")
	usr := User{ID: "u1", Name: "Ada", Email: "ada@test.cd", Role: RoleSchoolAdmin, SchoolID: "S1"}

	validToken, err := GenerateToken(NewClaims(usr, "Campus", time.Hour), key)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	// generate an expired token
	NowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := GenerateToken(NewClaims(usr, "Campus", time.Hour), key)
	NowFunc = time.Now // reset
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	noRole := usr
	noRole.Role = "janitor"
	noRoleToken, _ := GenerateToken(NewClaims(noRole, "Campus", time.Hour), key)

	tests := []struct {
		name    string
		token   string
		key     []byte
		wantErr error
	}{
		{name: "no token", key: key, wantErr: ErrInvalidToken},
		{name: "garbage", token: "lmaooolol", key: key, wantErr: ErrInvalidToken},
		{name: "wrong key", token: validToken, key: []byte("other"), wantErr: ErrInvalidToken},
		{name: "expired token", token: expiredToken, key: key, wantErr: ErrTokenExpired},
		{name: "unknown role", token: noRoleToken, key: key, wantErr: ErrInvalidToken},
		{name: "valid token", token: validToken, key: key},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.token, tt.key)
			if err != tt.wantErr {
				t.Fatalf("ParseToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && claims.User() != usr {
				t.Errorf("ParseToken() user = %+v, want %+v", claims.User(), usr)
			}
		})
	}
}

func TestSessionFromToken(t *testing.T) {
	usr := User{ID: "u2", Name: "Bo", Role: RoleStudent, SchoolID: "S2"}
	token, err := GenerateToken(NewClaims(usr, "Campus", time.Hour), []byte("any"))
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	sess, err := SessionFromToken(token)
	if err != nil {
		t.Fatalf("SessionFromToken() failed: %v", err)
	}
	got, ok := sess.CurrentUser()
	if !ok || got != usr {
		t.Errorf("CurrentUser() = %+v, %v; want %+v", got, ok, usr)
	}
	if sess.Token() != token {
		t.Errorf("Token() = %q; want the original token", sess.Token())
	}
	if sess.SchoolID() != "S2" {
		t.Errorf("SchoolID() = %q; want S2", sess.SchoolID())
	}

	if _, err = SessionFromToken("not.a.token"); err != ErrInvalidToken {
		t.Errorf("SessionFromToken(garbage) error = %v; want %v", err, ErrInvalidToken)
	}
}
