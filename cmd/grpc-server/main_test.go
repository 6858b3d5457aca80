package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"elementhub/pkg/rpc/tablerpc"
	"elementhub/pkg/utils"
)

func testConfig(t *testing.T) utils.Config {
	t.Helper()
	t.Setenv("ELEMENTHUB_CONFIG", "")
	t.Setenv("ELEMENTHUB_GRPC_ADDR", "127.0.0.1:0")
	t.Setenv("ELEMENTHUB_TABLE_CUTOFF", "118")
	cfg, err := utils.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func TestStartServesTableService(t *testing.T) {
	cfg := testConfig(t)
	gs, lis, source, err := start(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "embedded", source)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := tablerpc.NewTableServiceClient(conn)

	resp, err := client.GetTable(context.Background(), &tablerpc.GetTableRequest{Active: 94})
	require.NoError(t, err)
	assert.Equal(t, 29, resp.Counts.Matched, "cutoff from config places plutonium")
	assert.True(t, resp.Table.Cells[9][6].Active)

	_, err = client.GetElement(context.Background(), &tablerpc.GetElementRequest{AtomicNumber: 30})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestStartFailsOnEmptyDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Path = filepath.Join(t.TempDir(), "empty.db")
	_, _, _, err := start(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import-csv")
}

func TestStartFailsOnBusyAddress(t *testing.T) {
	cfg := testConfig(t)
	_, lis, _, err := start(context.Background(), cfg)
	require.NoError(t, err)
	defer lis.Close()

	cfg.GRPC.Addr = lis.Addr().String()
	_, _, _, err = start(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
