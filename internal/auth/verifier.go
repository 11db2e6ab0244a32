// Package auth verifies Firebase ID tokens against Google's securetoken
// JWKS and yields the verified principal.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

const firebaseJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// Principal is the verified identity attached to a request after the bearer
// token has been checked.
type Principal struct {
	Email  string
	Claims jwt.MapClaims
}

// TokenVerifier validates a bearer credential and yields the verified
// principal or fails.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}

// FirebaseVerifier checks RS256 ID tokens issued by Firebase Auth for the
// configured project. Signing keys come from Google's JWKS endpoint and
// refresh in the background.
type FirebaseVerifier struct {
	projectID string
	jwks      *keyfunc.JWKS
}

// NewFirebaseVerifier decodes the base64 service account credential to learn
// the project id and starts the JWKS refresh loop.
func NewFirebaseVerifier(serviceKeyB64 string) (*FirebaseVerifier, error) {
	raw, err := base64.StdEncoding.DecodeString(serviceKeyB64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service credential: %w", err)
	}

	var cred struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &cred); err != nil {
		return nil, fmt.Errorf("failed to parse service credential: %w", err)
	}
	if cred.ProjectID == "" {
		return nil, errors.New("service credential has no project_id")
	}

	jwks, err := keyfunc.Get(firebaseJWKSURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load securetoken JWKS: %w", err)
	}

	return &FirebaseVerifier{projectID: cred.ProjectID, jwks: jwks}, nil
}

func (v *FirebaseVerifier) Verify(token string) (*Principal, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("token is not valid")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("token carries no email claim")
	}

	return &Principal{Email: email, Claims: claims}, nil
}

// Stop ends the background JWKS refresh.
func (v *FirebaseVerifier) Stop() {
	v.jwks.EndBackground()
}
