package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/apps/mockapi/echo"
	"github.com/trezcool/campus/core/auth"
	"github.com/trezcool/campus/services/logger"
)

const secretKey = "test-secret"

func setup(t *testing.T) echoapi.Server {
	t.Helper()
	srv, err := echoapi.NewFixturesServer(echoapi.Options{
		AppName:        "Campus",
		DisableReqLogs: true,
		SecretKey:      secretKey,
		JWTExpiration:  time.Hour,
		Logger:         logsvc.NewNopLogger(),
	})
	require.NoError(t, err)
	return srv
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	token    string
	wantCode int
	wantMsg  string
	check    func(t *testing.T, data json.RawMessage)
}

func newAuthRequest(t *testing.T, method, path, token string, data interface{}) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if data != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(data))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func getToken(t *testing.T, usr auth.User) string {
	t.Helper()
	token, err := auth.GenerateToken(auth.NewClaims(usr, "Campus", time.Hour), []byte(secretKey))
	require.NoError(t, err)
	return token
}

var (
	platformAdmin = auth.User{ID: "u-admin", Role: auth.RolePlatformAdmin}
	schoolAdmin1  = auth.User{ID: "u-sa1", Role: auth.RoleSchoolAdmin, SchoolID: "S1"}
	schoolAdmin2  = auth.User{ID: "u-sa2", Role: auth.RoleSchoolAdmin, SchoolID: "S2"}
	student1      = auth.User{ID: "u-st1", Role: auth.RoleStudent, SchoolID: "S1"}
)

func runHTTPTests(t *testing.T, srv http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			wantCode := tt.wantCode
			if wantCode == 0 {
				wantCode = http.StatusOK
			}

			req, rec := newAuthRequest(t, method, tt.path, tt.token, tt.body)
			srv.ServeHTTP(rec, req)

			var resp response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
			require.Equal(t, wantCode, rec.Code, resp.Message)
			require.Equal(t, wantCode < 300, resp.Success)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, resp.Message)
			}
			if tt.check != nil {
				tt.check(t, resp.Data)
			}
		})
	}
}

func decodeIDs(t *testing.T, data json.RawMessage) []string {
	var docs []struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(data, &docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func wantIDs(ids ...string) func(t *testing.T, data json.RawMessage) {
	return func(t *testing.T, data json.RawMessage) {
		require.Equal(t, ids, decodeIDs(t, data))
	}
}
