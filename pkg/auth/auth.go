// Package auth provides authentication support for requests to the remote repository.
package auth

import (
	"bufio"
	"net/http"
	"os"
	"strings"

	"github.com/glorpus-work/artifactswap/pkg/errors"
)

// Authenticator applies credentials to an outgoing HTTP request.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	BearerAuthType Type = "bearer"
)

// BearerAuth represents Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply adds a Bearer token to the Authorization header of the HTTP request.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }

// LoadBearerTokenFile reads a bearer token from the first line of path.
func LoadBearerTokenFile(path string) (BearerAuth, error) {
	f, err := os.Open(path)
	if err != nil {
		return BearerAuth{}, errors.Wrapf(err, "failed to open token file %s", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return BearerAuth{}, errors.Wrapf(err, "failed to read token file %s", path)
		}
		return BearerAuth{}, errors.Wrapf(errors.ErrTokenFileEmpty, "token file %s", path)
	}
	token := strings.TrimSpace(scanner.Text())
	if token == "" {
		return BearerAuth{}, errors.Wrapf(errors.ErrTokenFileEmpty, "token file %s", path)
	}
	return BearerAuth{Token: token}, nil
}

// readMethods never carry credentials unless explicitly requested.
var readMethods = map[string]struct{}{
	http.MethodGet:  {},
	http.MethodHead: {},
}

type writesOnly struct {
	inner Authenticator
}

// WritesOnly wraps an authenticator so that GET and HEAD requests go out unauthenticated.
func WritesOnly(inner Authenticator) Authenticator {
	return writesOnly{inner: inner}
}

func (w writesOnly) Apply(req *http.Request) error {
	if _, ok := readMethods[req.Method]; ok {
		return nil
	}
	return w.inner.Apply(req)
}

func (w writesOnly) Type() Type { return w.inner.Type() }
