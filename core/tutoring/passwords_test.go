package tutoring

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// deterministic: equal inputs hash equal
	assert.Equal(t, HashPassword("demo123"), HashPassword("demo123"))
	assert.NotEqual(t, HashPassword("demo123"), HashPassword("demo124"))
	// sha256 hex digest shape
	assert.Len(t, HashPassword(""), 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", HashPassword("demo123"))
}

func TestCheckPassword(t *testing.T) {
	strong, err := HashPasswordStrong("demo123")
	require.NoError(t, err)
	fallback := legacyFallbackPrefix + base64.StdEncoding.EncodeToString([]byte("demo123"))

	tests := []struct {
		name   string
		stored string
		pwd    string
		want   bool
	}{
		{name: "sha256 match", stored: HashPassword("demo123"), pwd: "demo123", want: true},
		{name: "sha256 mismatch", stored: HashPassword("demo123"), pwd: "demo124", want: false},
		{name: "bcrypt match", stored: strong, pwd: "demo123", want: true},
		{name: "bcrypt mismatch", stored: strong, pwd: "demo124", want: false},
		{name: "fallback match", stored: fallback, pwd: "demo123", want: true},
		{name: "fallback mismatch", stored: fallback, pwd: "demo124", want: false},
		{name: "empty stored", stored: "", pwd: "demo123", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.stored, tt.pwd))
		})
	}
}
