package auth

import (
	"encoding/base64"
	"strings"

	"github.com/devfolio/portfolio-api/pkg/apperror"
)

// Gate authenticates a raw Authorization header. Mutating routes pass
// through it before reaching any use case.
type Gate interface {
	Authenticate(authHeader string) error
}

// BasicGate checks a Basic-scheme header against one static credential pair.
// Comparison is plain equality on the decoded values; swapping in a
// constant-time comparison only touches this type.
type BasicGate struct {
	username string
	password string
}

func NewBasicGate(username, password string) *BasicGate {
	return &BasicGate{username: username, password: password}
}

func (g *BasicGate) Authenticate(authHeader string) error {
	if authHeader == "" || !strings.HasPrefix(authHeader, "Basic ") {
		return apperror.NewAuthRequired()
	}

	encoded := strings.TrimPrefix(authHeader, "Basic ")
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return apperror.NewAuthError(err)
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return apperror.NewAuthError(nil)
	}

	if username != g.username || password != g.password {
		return apperror.NewAuthFailed()
	}
	return nil
}
