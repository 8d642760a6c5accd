package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashText(t *testing.T) {
	assert.Equal(t, HashText("some article"), HashText("some article"))
	assert.Equal(t, HashText("some article"), HashText("  some article  "), "surrounding whitespace is ignored")
	assert.NotEqual(t, HashText("some article"), HashText("another article"))
	assert.Len(t, HashText("some article"), 32)
}
