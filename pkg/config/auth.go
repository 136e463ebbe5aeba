package config

import (
	"github.com/glorpus-work/artifactswap/pkg/auth"
)

// Authenticator builds the authenticator for the remote repository.
// It returns nil when no token file is configured.
func (r RepositoryConfig) Authenticator() (auth.Authenticator, error) {
	if r.TokenFile == "" {
		return nil, nil
	}
	token, err := auth.LoadBearerTokenFile(r.TokenFile)
	if err != nil {
		return nil, err
	}
	if r.AuthReads {
		return token, nil
	}
	return auth.WritesOnly(token), nil
}
