package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xenowa/foodifire-backend/internal/pkg/jwtutil"
	"github.com/Xenowa/foodifire-backend/internal/transport/http/response"
)

// ContextEmailKey holds the authenticated user's email in the gin context.
const ContextEmailKey = "userEmail"

// AuthJWT gates protected routes on the session token clients send in the
// JSON body field "userToken". The body is buffered and restored so handlers
// can bind it again. Verification failures of any kind answer with the same
// opaque message; the cryptographic detail stays in the server log.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		var probe struct {
			UserToken string `json:"userToken"`
		}
		_ = json.Unmarshal(body, &probe)

		if probe.UserToken == "" {
			response.Message(c, http.StatusUnauthorized, "access denied!")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, probe.UserToken)
		if err != nil {
			log.Printf("token verification failed: %v", err)
			response.Message(c, http.StatusUnauthorized, "access denied!")
			c.Abort()
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
