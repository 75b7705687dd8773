package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndParse(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour, false)

	token, expiresAt, err := m.Issue(42, RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	principal, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 42, principal.UserID)
	assert.True(t, principal.IsAdmin())
}

func TestManager_ParseRejects(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour, false)
	other := NewManager([]byte("other-secret"), time.Hour, false)

	foreign, _, err := other.Issue(1, RoleAdmin)
	require.NoError(t, err)

	expiring := NewManager([]byte("test-secret"), time.Minute, false)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiring.Issue(1, RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: expired},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := m.Parse(testCase.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour, false)
	adminToken, _, _ := m.Issue(1, RoleAdmin)
	customerToken, _, _ := m.Issue(2, RoleCustomer)

	protected := m.Middleware(RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		assert.Equal(t, 1, p.UserID)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		cookie   string
		wantCode int
	}{
		{name: "no session", wantCode: http.StatusUnauthorized},
		{name: "tampered session", cookie: adminToken + "x", wantCode: http.StatusUnauthorized},
		{name: "customer session", cookie: customerToken, wantCode: http.StatusForbidden},
		{name: "admin session", cookie: adminToken, wantCode: http.StatusNoContent},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if testCase.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: testCase.cookie})
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)
			assert.Equal(t, testCase.wantCode, rr.Code)
		})
	}
}

func TestClearCookie(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour, true)
	rr := httptest.NewRecorder()
	m.ClearCookie(rr)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.True(t, cookies[0].Secure)
}
