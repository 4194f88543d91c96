package mask

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"vishal@example.com", "vi***@example.com"},
		{"ab@example.com", "**@example.com"},
		{"a@x.io", "**@x.io"},
		{"日本語@example.jp", "日本***@example.jp"},
		{"é@x.io", "**@x.io"},
		{"no-at-sign", "N/A"},
		{"", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Email(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestJSONEmail(t *testing.T) {
	in := `{"name":"Vishal","email" : "vishal@example.com","message":"hi"}`

	got := JSONEmail(in)

	assert.Equal(t, `{"name":"Vishal","email" : "***masked***","message":"hi"}`, got)
	assert.NotContains(t, got, "vishal@example.com")
}

func TestJSONEmail_Truncated(t *testing.T) {
	assert.Equal(t, `{"email":"trunc`, JSONEmail(`{"email":"trunc`))
}
