package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsforecast/ainode/internal/family"
	"github.com/tsforecast/ainode/internal/status"
)

// BuiltinRegistry returns a registry holding the built-in families.
func BuiltinRegistry(t *testing.T) *family.Registry {
	t.Helper()
	reg, err := family.NewBuiltinRegistry(family.BuiltinOptions{})
	require.NoError(t, err)
	return reg
}

// RequireStatus asserts err is a *status.Error of the given kind naming key.
func RequireStatus(t *testing.T, err error, kind status.Kind, key string) *status.Error {
	t.Helper()
	require.Error(t, err)
	var se *status.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, kind, se.Kind)
	assert.Equal(t, key, se.Key)
	assert.Equal(t, status.CodeFor(kind), se.Code)
	return se
}
