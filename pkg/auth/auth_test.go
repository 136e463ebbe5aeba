package auth_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/artifactswap/pkg/auth"
	"github.com/glorpus-work/artifactswap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAuth(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPut, "http://example.com", nil)
	bearerAuth := auth.BearerAuth{Token: "test-token-123"}

	require.NoError(t, bearerAuth.Apply(req))
	assert.Equal(t, "Bearer test-token-123", req.Header.Get("Authorization"))
	assert.Equal(t, auth.BearerAuthType, bearerAuth.Type())
}

func TestWritesOnly(t *testing.T) {
	a := auth.WritesOnly(auth.BearerAuth{Token: "secret"})

	tests := []struct {
		method string
		expect string
	}{
		{method: http.MethodGet, expect: ""},
		{method: http.MethodHead, expect: ""},
		{method: http.MethodPut, expect: "Bearer secret"},
		{method: http.MethodPost, expect: "Bearer secret"},
		{method: http.MethodDelete, expect: "Bearer secret"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, "http://example.com", nil)
			require.NoError(t, a.Apply(req))
			assert.Equal(t, tt.expect, req.Header.Get("Authorization"))
		})
	}
	assert.Equal(t, auth.BearerAuthType, a.Type())
}

func TestLoadBearerTokenFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "first line only", content: "abc123\nsecond line\n", want: "abc123"},
		{name: "surrounding whitespace", content: "  tok  \n", want: "tok"},
		{name: "empty file", content: "", wantErr: errors.ErrTokenFileEmpty},
		{name: "blank first line", content: "\nlater", wantErr: errors.ErrTokenFileEmpty},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, string(rune('a'+i)))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := auth.LoadBearerTokenFile(path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Token)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := auth.LoadBearerTokenFile(filepath.Join(dir, "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
