package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/pkg/catalog"
	"elementhub/pkg/utils"
)

func TestExportRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "elements.csv")

	n, source, err := run(context.Background(), utils.DBConfig{}, out)
	require.NoError(t, err)
	assert.Equal(t, 29, n)
	assert.Equal(t, "embedded", source)

	back, err := catalog.LoadFile(out)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Elements(), back.Elements())
}
