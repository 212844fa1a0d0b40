//go:build unit || !integration

package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", formatCents(0))
	assert.Equal(t, "$19.05", formatCents(1905))
	assert.Equal(t, "$490.00", formatCents(49000))
}
