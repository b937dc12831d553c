package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xenowa/foodifire-backend/internal/pkg/jwtutil"
)

const testSecret = "middleware-test-secret"

// newGatedRouter mounts a handler behind AuthJWT that echoes both the email
// placed in the context and the "payload" field bound from the restored body.
func newGatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthJWT(testSecret))
	router.POST("/echo", func(c *gin.Context) {
		var req struct {
			Payload string `json:"payload"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"email":   c.GetString(ContextEmailKey),
			"payload": req.Payload,
		})
	})
	return router
}

func doPost(t *testing.T, router *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWTAllowsValidToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, time.Hour, "user@example.com")
	require.NoError(t, err)

	rec := doPost(t, newGatedRouter(), gin.H{
		"userToken": token,
		"payload":   "still readable",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user@example.com", body["email"])
	// The handler bound the body again, so the middleware restored it intact.
	assert.Equal(t, "still readable", body["payload"])
}

func TestAuthJWTRejectsMissingToken(t *testing.T) {
	rec := doPost(t, newGatedRouter(), gin.H{"payload": "anything"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied!")
}

func TestAuthJWTRejectsExpiredToken(t *testing.T) {
	token, err := jwtutil.GenerateToken(testSecret, -time.Hour, "user@example.com")
	require.NoError(t, err)

	rec := doPost(t, newGatedRouter(), gin.H{"userToken": token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied!")
}

func TestAuthJWTRejectsForeignSignature(t *testing.T) {
	token, err := jwtutil.GenerateToken("some-other-secret", time.Hour, "user@example.com")
	require.NoError(t, err)

	rec := doPost(t, newGatedRouter(), gin.H{"userToken": token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied!")
}

func TestAuthJWTRejectsGarbageToken(t *testing.T) {
	rec := doPost(t, newGatedRouter(), gin.H{"userToken": "not.a.jwt"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access denied!")
}
