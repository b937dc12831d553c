package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Xenowa/foodifire-backend/internal/model"
	"github.com/Xenowa/foodifire-backend/internal/pkg/jwtutil"
	"github.com/Xenowa/foodifire-backend/internal/sso"
)

// UserStore is the account lookup/creation surface the login flow needs.
type UserStore interface {
	GetByEmail(email string) (*model.User, error)
	Create(user *model.User) error
}

// AuthService verifies SSO credentials and issues session tokens.
type AuthService struct {
	users     UserStore
	verifier  sso.Verifier
	jwtSecret string
	tokenTTL  time.Duration
}

// LoginResult is everything the login response carries back to the client.
type LoginResult struct {
	Message      string
	Profile      sso.Profile
	Token        string
	Diseases     []string
	SavedReports []model.SavedReport
}

func NewAuthService(users UserStore, verifier sso.Verifier, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login verifies the third-party credential, finds or creates the account,
// and issues a fresh session token. A bad credential yields
// sso.ErrInvalidCredential; anything else is an internal failure the handler
// must not detail to the client.
func (s *AuthService) Login(ctx context.Context, credential string) (*LoginResult, error) {
	if credential == "" {
		return nil, sso.ErrInvalidCredential
	}

	profile, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(profile.Email)
	if err != nil {
		return nil, err
	}

	message := "Login was successful"
	if user == nil {
		blob, err := json.Marshal(profile)
		if err != nil {
			return nil, fmt.Errorf("marshal sso profile failed: %w", err)
		}
		user = &model.User{
			Email:        profile.Email,
			SSOProfile:   blob,
			Diseases:     []string{},
			SavedReports: []model.SavedReport{},
		}
		if err := s.users.Create(user); err != nil {
			return nil, err
		}
		message = "Signup was successful"
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.tokenTTL, profile.Email)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Message:      message,
		Profile:      *profile,
		Token:        token,
		Diseases:     user.Diseases,
		SavedReports: user.SavedReports,
	}, nil
}
