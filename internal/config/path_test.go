package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("DONORPULSE_TEST_DIR", "/var/lib/donorpulse")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty stays empty", "", ""},
		{"absolute path untouched", "/tmp/db.sqlite", "/tmp/db.sqlite"},
		{"tilde prefix", "~/data/db.sqlite", filepath.Join(home, "data/db.sqlite")},
		{"bare tilde", "~", home},
		{"environment variable", "$DONORPULSE_TEST_DIR/db.sqlite", "/var/lib/donorpulse/db.sqlite"},
		{"tilde mid-path is literal", "/tmp/~backup", "/tmp/~backup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
