package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccbj/ccbj-forms/internal/validate"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"a@b.c", true},
		{"joao@example.com", true},
		{"joao.silva@ccbj.org.br", true},
		{"not-an-email", false},
		{"email_invalido", false},
		{"a@b", false},
		{"@b.c", false},
		{"a@.c", false},
		{"a b@c.d", false},
		{"a@@b.c", false},
		{"a\vb@c.d", false},
		{"a\u00a0b@c.d", false},
		{"a\u3000b@c.d", false},
		{"a@c\u2028.d", false},
		{"a@c.d\u202f", false},
		{"\ufeffa@c.d", false},
		{"a@c.d\u1680", false},
		{"josé@café.com.br", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.IsValidEmail(tt.input))
		})
	}
}
