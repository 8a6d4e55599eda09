package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"burger-house-api/models"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var seedAccounts = map[int]models.User{
	1: {ID: 1, Username: "admin", Role: models.RoleAdmin},
	2: {ID: 2, Username: "staff", Role: models.RoleStaff},
	3: {ID: 3, Username: "maria", Role: models.RoleCustomer},
}

func lookupIn(accounts map[int]models.User) UserLookup {
	return func(id int) (models.User, error) {
		u, ok := accounts[id]
		if !ok {
			return models.User{}, errors.NotFoundf("user %d", id)
		}
		return u, nil
	}
}

func newRouter(tokens *Tokens) *gin.Engine {
	return newRouterWith(tokens, seedAccounts)
}

func newRouterWith(tokens *Tokens, accounts map[int]models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	r.GET("/staff", tokens.AuthRequired(lookupIn(accounts)), RoleRequired(models.RoleStaff, models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)
	tok, err := tokens.GenerateToken(models.User{ID: 7, Username: "staff", Role: models.RoleStaff})
	require.NoError(t, err)

	claims, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)

	_, err = NewTokens([]byte("other"), time.Hour).Parse(tok)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := tokens.GenerateToken(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(newRouter(NewTokens([]byte("secret"), time.Hour)), tok).Code)
}

func TestAuthAndRoleMiddleware(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)
	r := newRouter(tokens)

	w := get(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	customer, err := tokens.GenerateToken(models.User{ID: 3, Username: "maria", Role: models.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, get(r, customer).Code)

	staff, err := tokens.GenerateToken(models.User{ID: 2, Username: "staff", Role: models.RoleStaff})
	require.NoError(t, err)
	w = get(r, staff)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":2,"role":"staff"}`, w.Body.String())
}

func TestRequestIDIsReused(t *testing.T) {
	r := newRouter(NewTokens([]byte("secret"), time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestStoredAccountOverridesTokenClaims(t *testing.T) {
	tokens := NewTokens([]byte("secret"), time.Hour)
	accounts := map[int]models.User{
		2: {ID: 2, Username: "staff", Role: models.RoleStaff},
		4: {ID: 4, Username: "cook", Role: models.RoleStaff},
	}
	r := newRouterWith(tokens, accounts)

	staff, err := tokens.GenerateToken(accounts[2])
	require.NoError(t, err)
	cook, err := tokens.GenerateToken(accounts[4])
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, get(r, staff).Code)
	require.Equal(t, http.StatusOK, get(r, cook).Code)

	accounts[2] = models.User{ID: 2, Username: "staff", Role: models.RoleCustomer}
	assert.Equal(t, http.StatusForbidden, get(r, staff).Code)

	delete(accounts, 4)
	assert.Equal(t, http.StatusUnauthorized, get(r, cook).Code)

	accounts[4] = models.User{ID: 4, Username: "someone-else", Role: models.RoleAdmin}
	assert.Equal(t, http.StatusUnauthorized, get(r, cook).Code)
}
