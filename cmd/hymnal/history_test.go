// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/hymnal/internal/history"
)

func TestFormatHistory(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		{ID: 2, StartedAt: start, FinishedAt: start.Add(90 * time.Second), Sources: 12, ExitCode: 3, Error: "conversion failed for a.mscz: exit status 1"},
		{ID: 1, StartedAt: start, FinishedAt: start.Add(time.Minute), Sources: 12, Delivered: true},
	}

	var out bytes.Buffer
	formatHistory(&out, entries)

	s := out.String()
	assert.Contains(t, s, "Delivered")
	assert.Contains(t, s, "1m30s")
	assert.Contains(t, s, "conversion failed for a.mscz")
	assert.Contains(t, s, "yes")
}

func TestFormatHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	formatHistory(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())
}
