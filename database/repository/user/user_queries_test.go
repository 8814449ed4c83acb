package userRepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWorkerCode(t *testing.T) {
	assert.Equal(t, "WRK001", FormatWorkerCode(1))
	assert.Equal(t, "WRK042", FormatWorkerCode(42))
	assert.Equal(t, "WRK1000", FormatWorkerCode(1000))
}
