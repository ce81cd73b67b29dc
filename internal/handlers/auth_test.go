package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/emilythestrangee/metalnews/backend/internal/auth"
	"github.com/emilythestrangee/metalnews/backend/internal/database/dbtest"
	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

var testSecret = []byte("handlers-secret")

func TestAuthHandler(t *testing.T) {
	db := dbtest.Open(t)
	h := NewAuthHandler(db, testSecret, zaptest.NewLogger(t))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)

	register := gin.H{"username": "dio", "email": "dio@example.com", "password": "holydiver"}

	t.Run("register issues a token", func(t *testing.T) {
		dbtest.Reset(t, db)

		w := do(r, http.MethodPost, "/api/register", register)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "dio", resp.User.Username)
		assert.NotContains(t, w.Body.String(), "holydiver")

		claims, err := auth.Parse(testSecret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, now.Add(72*time.Hour).Unix(), claims.ExpiresAt.Unix())

		var stored models.User
		require.NoError(t, db.First(&stored, resp.User.ID).Error)
		assert.NotEqual(t, "holydiver", stored.Password)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		dbtest.Reset(t, db)

		require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/register", register).Code)
		w := do(r, http.MethodPost, "/api/register", gin.H{"username": "dio", "email": "other@example.com", "password": "rainbow1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("register validates input", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/register", gin.H{"username": "dio", "email": "dio", "password": "1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login", func(t *testing.T) {
		dbtest.Reset(t, db)
		require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/api/register", register).Code)

		w := do(r, http.MethodPost, "/api/login", gin.H{"email": "dio@example.com", "password": "holydiver"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp models.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		w = do(r, http.MethodPost, "/api/login", gin.H{"email": "dio@example.com", "password": "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(r, http.MethodPost, "/api/login", gin.H{"email": "nobody@example.com", "password": "holydiver"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me", func(t *testing.T) {
		dbtest.Reset(t, db)
		user := models.User{Username: "ronnie", Email: "ronnie@example.com", Password: "x", IsStaff: true}
		require.NoError(t, db.Create(&user).Error)

		me := gin.New()
		me.GET("/api/me", asUser(user.ID), h.GetMe)
		w := do(me, http.MethodGet, "/api/me", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "ronnie", got.Username)
		assert.True(t, got.IsStaff)

		anon := gin.New()
		anon.GET("/api/me", asUser(0), h.GetMe)
		assert.Equal(t, http.StatusUnauthorized, do(anon, http.MethodGet, "/api/me", nil).Code)
	})
}
