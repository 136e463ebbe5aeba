package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{name: "nil error stays nil", err: nil, msg: "context"},
		{name: "adds context", err: errors.New("boom"), msg: "download pom", expected: "download pom: boom"},
		{name: "empty message", err: errors.New("boom"), msg: "", expected: ": boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			require.Error(t, got)
			assert.Equal(t, tt.expected, got.Error())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestWrapf(t *testing.T) {
	assert.NoError(t, Wrapf(nil, "bom %s", "abc"))

	got := Wrapf(ErrBomNotFound, "bom %s in %s", "abc123", "primary")
	require.Error(t, got)
	assert.Equal(t, "bom abc123 in primary: bom not found", got.Error())
	assert.ErrorIs(t, got, ErrBomNotFound)
}

func TestSentinelsSurviveNestedWrapping(t *testing.T) {
	err := Wrap(Wrapf(ErrPropertyNotSet, "key %q", "protos.version"), "discover protos")
	assert.ErrorIs(t, err, ErrPropertyNotSet)
	assert.NotErrorIs(t, err, ErrProjectsUnavailable)
}
