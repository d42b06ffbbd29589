package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFixedWidthInt(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"int8", true},
		{"int16", true},
		{"int32", true},
		{"int64", true},
		{"uint8", true},
		{"uint16", true},
		{"uint32", true},
		{"uint64", true},

		// Platform sized or aliased
		{"int", false},
		{"uint", false},
		{"uintptr", false},
		{"byte", false},
		{"rune", false},

		{"float64", false},
		{"Version", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsFixedWidthInt(tt.input))
		})
	}
}

func TestIsFloat(t *testing.T) {
	assert.True(t, IsFloat("float32"))
	assert.True(t, IsFloat("float64"))
	assert.False(t, IsFloat("complex128"))
	assert.False(t, IsFloat("int64"))
}

func TestIsUUIDImport(t *testing.T) {
	assert.True(t, IsUUIDImport("github.com/google/uuid"))
	assert.True(t, IsUUIDImport("github.com/gofrs/uuid/v5"))
	assert.False(t, IsUUIDImport("github.com/example/uuid"))
	assert.Len(t, UUIDImports(), 4)
}

func TestIsBuiltinType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"string is builtin", "string", true},
		{"int64 is builtin", "int64", true},
		{"any is builtin", "any", true},
		{"error is builtin", "error", true},
		{"custom type not builtin", "Email", false},
		{"qualified type not builtin", "time.Time", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsBuiltinType(tt.input))
		})
	}
}
