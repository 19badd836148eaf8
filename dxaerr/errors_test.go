package dxaerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/dxacore/dxaerr"
)

func TestErrorUnwrapsToSentinel(t *testing.T) {
	err := dxaerr.New(dxaerr.InvalidInput, "pipeline", dxaerr.ErrZeroAtoms)
	assert.ErrorIs(t, err, dxaerr.ErrZeroAtoms)
	assert.Contains(t, err.Error(), "InvalidInput")
	assert.Contains(t, err.Error(), "pipeline")
}

func TestNewfPreservesSentinelThroughFormatting(t *testing.T) {
	err := dxaerr.Newf(dxaerr.ConfigurationError, "pipeline", dxaerr.ErrBadOption, "smoothingLevel=%d", -1)
	assert.True(t, errors.Is(err, dxaerr.ErrBadOption))
	assert.Contains(t, err.Error(), "smoothingLevel=-1")
}

func TestClassIsFatal(t *testing.T) {
	assert.True(t, dxaerr.InvalidInput.IsFatal())
	assert.True(t, dxaerr.CellTooSmall.IsFatal())
	assert.True(t, dxaerr.ConfigurationError.IsFatal())
	assert.False(t, dxaerr.StructureIdFailure.IsFatal())
	assert.False(t, dxaerr.ClusterCompatibilityFailure.IsFatal())
	assert.False(t, dxaerr.CircuitCloseFailure.IsFatal())
}

func TestClassStringMatchesTaxonomyNames(t *testing.T) {
	cases := map[dxaerr.Class]string{
		dxaerr.InvalidInput:                 "InvalidInput",
		dxaerr.CellTooSmall:                 "CellTooSmall",
		dxaerr.StructureIdFailure:           "StructureIdFailure",
		dxaerr.ClusterCompatibilityFailure:  "ClusterCompatibilityFailure",
		dxaerr.CircuitCloseFailure:          "CircuitCloseFailure",
		dxaerr.ConfigurationError:           "ConfigurationError",
	}
	for class, want := range cases {
		assert.Equal(t, want, class.String())
	}
}
