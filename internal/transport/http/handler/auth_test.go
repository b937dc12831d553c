package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xenowa/foodifire-backend/internal/app"
	"github.com/Xenowa/foodifire-backend/internal/model"
	"github.com/Xenowa/foodifire-backend/internal/sso"
)

type stubVerifier struct {
	profile *sso.Profile
	err     error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*sso.Profile, error) {
	return s.profile, s.err
}

type stubUserStore struct {
	users   map[string]*model.User
	created int
	err     error
}

func (s *stubUserStore) GetByEmail(email string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

func (s *stubUserStore) Create(user *model.User) error {
	if s.err != nil {
		return s.err
	}
	if s.users == nil {
		s.users = map[string]*model.User{}
	}
	s.users[user.Email] = user
	s.created++
	return nil
}

func newAuthRouter(verifier sso.Verifier, users app.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(app.NewAuthService(users, verifier, "test-secret", time.Hour))

	router := gin.New()
	router.POST("/login", h.Login)
	return router
}

func TestLoginExistingUser(t *testing.T) {
	profile := &sso.Profile{
		Email:      "user@example.com",
		GivenName:  "Pat",
		FamilyName: "Doe",
		Picture:    "https://example.com/p.jpg",
	}
	users := &stubUserStore{users: map[string]*model.User{
		"user@example.com": {
			Email:    "user@example.com",
			Diseases: []string{"Diabetes"},
		},
	}}
	router := newAuthRouter(&stubVerifier{profile: profile}, users)

	rec := postJSON(t, router, "/login", gin.H{"credential": "good-token"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Login was successful", body["message"])
	assert.Equal(t, []any{"Diabetes"}, body["diseases"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Pat", user["firstName"])
	assert.Equal(t, "Doe", user["lastName"])
	assert.Equal(t, "user@example.com", user["email"])
	assert.NotEmpty(t, user["token"])
	assert.Zero(t, users.created)
}

func TestLoginSignsUpNewUser(t *testing.T) {
	profile := &sso.Profile{Email: "new@example.com", GivenName: "New"}
	users := &stubUserStore{}
	router := newAuthRouter(&stubVerifier{profile: profile}, users)

	rec := postJSON(t, router, "/login", gin.H{"credential": "good-token"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Signup was successful", body["message"])
	assert.Equal(t, []any{}, body["diseases"])
	assert.Equal(t, []any{}, body["savedReports"])
	assert.Equal(t, 1, users.created)
}

func TestLoginRejectsBadCredential(t *testing.T) {
	router := newAuthRouter(&stubVerifier{err: sso.ErrInvalidCredential}, &stubUserStore{})

	rec := postJSON(t, router, "/login", gin.H{"credential": "tampered"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid user detected. Please try again", decodeBody(t, rec)["message"])
}

func TestLoginRejectsMissingCredential(t *testing.T) {
	router := newAuthRouter(&stubVerifier{}, &stubUserStore{})

	rec := postJSON(t, router, "/login", gin.H{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid user detected. Please try again", decodeBody(t, rec)["message"])
}

func TestLoginStoreFailure(t *testing.T) {
	profile := &sso.Profile{Email: "user@example.com"}
	users := &stubUserStore{err: errors.New("connection refused")}
	router := newAuthRouter(&stubVerifier{profile: profile}, users)

	rec := postJSON(t, router, "/login", gin.H{"credential": "good-token"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An error occurred. Registration failed.", decodeBody(t, rec)["message"])
}
