package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/internal/elements"
	"elementhub/pkg/utils"
)

func TestExportMirror(t *testing.T) {
	out := filepath.Join(t.TempDir(), "data", "mirror.json")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	snap, err := run(context.Background(), utils.DBConfig{}, 118, out, now)
	require.NoError(t, err)
	assert.Equal(t, "embedded", snap.Source)
	assert.Equal(t, 118, snap.Cutoff)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	back, err := elements.ReadSnapshot(f)
	require.NoError(t, err)
	assert.True(t, now.Equal(back.GeneratedAt))
	assert.Len(t, back.Elements, 29)
	assert.Len(t, back.Legend, 9)
	require.NotNil(t, back.Table.Cells[9][6].Element)
	assert.Equal(t, "Pu", back.Table.Cells[9][6].Element.Symbol)
}
