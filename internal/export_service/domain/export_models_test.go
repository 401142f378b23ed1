package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/batiku-id/batiku/internal/export_service/domain"
)

func TestTargetPixels(t *testing.T) {
	assert.Equal(t, 2362, domain.TargetPixels(20))
	assert.Equal(t, 2953, domain.TargetPixels(25))

	// Anything outside the supported set maps to the default rapport.
	assert.Equal(t, 2953, domain.TargetPixels(0))
	assert.Equal(t, 2953, domain.TargetPixels(30))
	assert.Equal(t, 2953, domain.TargetPixels(-1))
}
