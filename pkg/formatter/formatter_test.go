package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatNumber(tc.in))
	}
}

func TestTokenPreview(t *testing.T) {
	assert.Equal(t, "", TokenPreview("", 10))
	assert.Equal(t, "short", TokenPreview("short", 10))
	assert.Equal(t, "IGQVJWUkxl...", TokenPreview("IGQVJWUkxlSomeVeryLongToken", 10))
}
