package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeItem(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "milk", "milk"},
		{"uppercase folded", "MILK", "milk"},
		{"trimmed", "  eggs  ", "eggs"},
		{"inner whitespace collapsed", "chicken   breast", "chicken breast"},
		{"tabs and newlines", "ground\tbeef\n", "ground beef"},
		{"diacritics stripped", "café au lait", "cafe au lait"},
		{"mixed", "  Jalapeño   Peppers ", "jalapeno peppers"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeItem(tt.input))
		})
	}
}
