// Package sso verifies third-party identity credentials presented at login.
package sso

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrInvalidCredential carries the human-readable reason returned to the
// client on a bad, expired, or tampered credential.
var ErrInvalidCredential = errors.New("Invalid user detected. Please try again")

// Profile is the subset of the identity provider's payload this service
// keeps for an account.
type Profile struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Verifier checks an SSO credential and extracts the holder's profile.
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Profile, error)
}

// GoogleVerifier validates Google ID tokens against the issuer's public keys
// and the configured OAuth client ID.
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, credential string) (*Profile, error) {
	payload, err := idtoken.Validate(ctx, credential, v.clientID)
	if err != nil {
		// The verification detail stays server-side.
		return nil, ErrInvalidCredential
	}

	profile := &Profile{
		Email:      claimString(payload.Claims, "email"),
		GivenName:  claimString(payload.Claims, "given_name"),
		FamilyName: claimString(payload.Claims, "family_name"),
		Picture:    claimString(payload.Claims, "picture"),
	}
	if profile.Email == "" {
		return nil, ErrInvalidCredential
	}
	return profile, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
