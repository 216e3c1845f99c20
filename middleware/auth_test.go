package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"servitech/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	sessions map[string]*session.Principal
}

func (f *fakeResolver) Resolve(ctx context.Context, token string) (*session.Principal, error) {
	p, ok := f.sessions[token]
	if !ok {
		return nil, session.ErrInvalidSession
	}
	return p, nil
}

func newAuthRouter(resolver session.Resolver, role session.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionAuth(resolver, role), func(c *gin.Context) {
		id, _ := c.Get("principalID")
		c.JSON(http.StatusOK, gin.H{"principalId": id})
	})
	return r
}

func TestSessionAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(&fakeResolver{}, session.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(&fakeResolver{sessions: map[string]*session.Principal{}}, session.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer no-such-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthWrongRole(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*session.Principal{
		"tok-1": {ID: "tech-1", Role: session.RoleTechnician},
	}}
	r := newAuthRouter(resolver, session.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSessionAuthSetsPrincipal(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*session.Principal{
		"tok-1": {ID: "cust-1", Role: session.RoleCustomer},
	}}
	r := newAuthRouter(resolver, session.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cust-1")
}

func TestSessionAuthAcceptsBareToken(t *testing.T) {
	// The Bearer prefix is optional; a bare token resolves the same way.
	resolver := &fakeResolver{sessions: map[string]*session.Principal{
		"tok-1": {ID: "cust-1", Role: session.RoleCustomer},
	}}
	r := newAuthRouter(resolver, session.RoleCustomer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "tok-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
