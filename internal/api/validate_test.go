package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatorNonBlank(t *testing.T) {
	type payload struct {
		Name string `validate:"nonblank"`
	}

	var v = newValidator()
	require.NotPanics(t, func() { v = newValidator() })

	assert.NoError(t, v.Struct(payload{Name: "Zex"}))
	assert.Error(t, v.Struct(payload{Name: "   "}))
	assert.Error(t, v.Struct(payload{}))
}
