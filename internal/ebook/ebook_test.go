// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ebook

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hymnal/internal/tool"
)

type recordingRunner struct {
	args []string
	err  error
}

func (r *recordingRunner) Run(_ context.Context, args ...string) error {
	r.args = args
	return r.err
}

func TestCalibreConverter(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "hymnal.pdf")
	out := filepath.Join(dir, "kindle", "hymnal.mobi")

	tests := []struct {
		name    string
		findErr error
		runErr  error
		wantErr string
	}{
		{name: "success"},
		{name: "calibre missing", findErr: &tool.NotFoundError{Path: "ebook-convert", Reason: "not on PATH"}, wantErr: "locating ebook-convert"},
		{name: "conversion fails", runErr: errors.New("exit status 1"), wantErr: "to .mobi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingRunner{err: tt.runErr}
			var asked string
			c := &CalibreConverter{
				bin: "ebook-convert",
				find: func(name string) (runner, error) {
					asked = name
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return r, nil
				},
			}

			err := c.Convert(context.Background(), in, out)

			assert.Equal(t, "ebook-convert", asked)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{in, out}, r.args)
			assert.DirExists(t, filepath.Dir(out))
		})
	}
}

func TestNewCalibreConverter_MissingBinary(t *testing.T) {
	c := NewCalibreConverter(filepath.Join(t.TempDir(), "ebook-convert"))
	err := c.Convert(context.Background(), "in.pdf", filepath.Join(t.TempDir(), "out.mobi"))

	var nf *tool.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
