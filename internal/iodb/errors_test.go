package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestNotConnectedError_Structure(t *testing.T) {
	gnErr, ok := NotConnectedError().(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestAcquireConnError_Structure(t *testing.T) {
	originalErr := errors.New("pool closed")
	gnErr, ok := AcquireConnError(originalErr).(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBAcquireConnError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
