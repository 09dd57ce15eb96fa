package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "smartphone", "smartphone"},
		{"percent escaped", "100% cotton", `100\% cotton`},
		{"underscore escaped", "snake_case", `snake\_case`},
		{"backslash escaped first", `C:\temp`, `C:\\temp`},
		{"all metacharacters", `\%_`, `\\\%\_`},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeLike(tt.input))
		})
	}
}
