package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAABB_SwapsCorners(t *testing.T) {
	box := NewAABB(Vec3{X: 10, Y: -2, Z: 3}, Vec3{X: -10, Y: 2, Z: -3})

	assert.Equal(t, Vec3{X: -10, Y: -2, Z: -3}, box.Min)
	assert.Equal(t, Vec3{X: 10, Y: 2, Z: 3}, box.Max)
}
