package calcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalid(t *testing.T) {
	err := Invalid("max combo must be > 0, got %d", 0)

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrUnsupportedMode))
	assert.Equal(t, "invalid input: max combo must be > 0, got 0", err.Error())
}
