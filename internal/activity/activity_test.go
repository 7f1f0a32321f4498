package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsKnownCategory(c), "fixed category %s must be known", c)
	}
	assert.True(t, IsKnownCategory(DefaultCategory))

	assert.False(t, IsKnownCategory("Skydiving"))
	assert.False(t, IsKnownCategory(""))
	assert.False(t, IsKnownCategory("energy"), "category matching is case-sensitive")
}
