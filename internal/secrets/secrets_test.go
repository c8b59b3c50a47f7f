// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads credentials and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeySMTPUser, "  choir@example.com \n")
				writeFile(t, dir, KeySMTPPassword, "hunter2\n")
				return dir
			},
			want: Secrets{
				KeySMTPUser:     "choir@example.com",
				KeySMTPPassword: "hunter2",
			},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			want: Secrets{},
		},
		{
			name: "skips dotfiles, empty files, and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".smtp-password", "old")
				writeFile(t, dir, "blank", "  \n\t")
				writeFile(t, dir, KeySMTPPassword, "current")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Secrets{KeySMTPPassword: "current"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			got, err := Load(tt.setup(t), &warn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, warn.String())
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files without permission bits")
	}
	dir := t.TempDir()
	writeFile(t, dir, KeySMTPUser, "choir@example.com")

	bad := filepath.Join(dir, KeySMTPPassword)
	require.NoError(t, os.WriteFile(bad, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(bad, 0o644) })

	var warn bytes.Buffer
	got, err := Load(dir, &warn)
	require.NoError(t, err)
	assert.Equal(t, "choir@example.com", got.Get(KeySMTPUser))
	assert.Empty(t, got.Get(KeySMTPPassword))
	assert.Contains(t, warn.String(), "could not read secret smtp-password")
}

func TestKeys(t *testing.T) {
	s := Secrets{KeySMTPUser: "u", KeySMTPPassword: "p"}
	assert.ElementsMatch(t, []string{KeySMTPUser, KeySMTPPassword}, s.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
