// Package auth implements credential verification and the authorization
// policy shared by every mutating operation.
package auth

import (
	"strings"

	"ember/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the caller's role as carried in the verified credential.
// Authorization only distinguishes admin from everyone else.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Identity is the verified caller: an opaque subject id plus a role. It is
// produced per request and never persisted.
type Identity struct {
	SubjectID string
	Role      Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Verifier validates bearer credentials against a pre-shared HMAC secret.
// It has no side effects; token issuance lives elsewhere.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the given signing secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses a raw Authorization header value of the form
// "Bearer <token>" and returns the identity it carries.
//
// Any shape other than the two-part bearer scheme fails with
// MALFORMED_CREDENTIAL. Signature, expiry and claim failures fail with
// INVALID_CREDENTIAL. Both sub and role claims are required; the verifier
// never defaults a role.
func (v *Verifier) Verify(raw string) (Identity, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Identity{}, models.NewMalformedCredentialError("Invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.NewInvalidCredentialError("Invalid signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, models.NewInvalidCredentialError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, models.NewInvalidCredentialError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, models.NewInvalidCredentialError("Invalid token structure - missing subject")
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Identity{}, models.NewInvalidCredentialError("Invalid token structure - missing role")
	}

	return Identity{SubjectID: sub, Role: Role(role)}, nil
}
