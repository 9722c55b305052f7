package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "github.com/aswin071/Expense-Tracker/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueAndParse(t *testing.T) {
	ti := NewTokenIssuer(testSecret, 30*time.Minute, 7*24*time.Hour)
	pair, err := ti.IssuePair(dom.User{ID: 42, Username: "alice"})
	require.NoError(t, err)

	claims, err := ti.Parse(pair.AccessToken, TypeAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)

	refresh, err := ti.Parse(pair.RefreshToken, TypeRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, refresh.ID)
	assert.True(t, refresh.ExpiresAt.After(claims.ExpiresAt.Time))
}

func TestParseRejectsWrongType(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Minute, time.Hour)
	pair, err := ti.IssuePair(dom.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	_, err = ti.Parse(pair.RefreshToken, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = ti.Parse(pair.AccessToken, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	ti := NewTokenIssuer(testSecret, time.Minute, time.Hour)
	issued := time.Now()
	ti.now = func() time.Time { return issued }
	pair, err := ti.IssuePair(dom.User{ID: 1, Username: "bob"})
	require.NoError(t, err)

	ti.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = ti.Parse(pair.AccessToken, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Minute, time.Hour)
	_, err = other.Parse(pair.RefreshToken, TypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ti.Parse("not-a-jwt", TypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevocationStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	store := NewRevocationStore(rdb)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	claimed, err := store.Revoke(ctx, "abc", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = store.Revoke(ctx, "abc", time.Hour)
	require.NoError(t, err)
	assert.False(t, claimed, "second revoke must not claim the same jti")

	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	claimed, err = store.Revoke(ctx, "old", 0)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.False(t, mr.Exists(revokedKeyPrefix+"old"))
}

func TestRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ti := NewTokenIssuer(testSecret, time.Minute, time.Hour)
	pair, err := ti.IssuePair(dom.User{ID: 9, Username: "carol"})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireToken(ti), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserIDFromContext(c)})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + pair.AccessToken, http.StatusUnauthorized},
		{"refresh token", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"access token", "Bearer " + pair.AccessToken, http.StatusOK},
		{"lowercase scheme", "bearer " + pair.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":9}`, w.Body.String())
			} else {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
