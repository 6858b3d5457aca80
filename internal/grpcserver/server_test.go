package grpcserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"elementhub/internal/display"
	"elementhub/internal/elements"
	"elementhub/pkg/catalog"
	"elementhub/pkg/rpc/tablerpc"
)

func newClient(t *testing.T) *tablerpc.TableServiceClient {
	t.Helper()
	svc, err := elements.NewService(catalog.Default(), elements.Options{CacheSize: 4})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	gs := New(svc)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return tablerpc.NewTableServiceClient(conn)
}

func TestListElements(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	resp, err := c.ListElements(ctx, &tablerpc.ListElementsRequest{
		Filters: tablerpc.Filters{Periods: []string{"1"}, Blocks: []string{"s"}},
	})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "H", resp.Items[0].Symbol)
	assert.Equal(t, "He", resp.Items[1].Symbol)
	assert.Equal(t, "Filters Applied", resp.Summary.Title)

	all, err := c.ListElements(ctx, &tablerpc.ListElementsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 29, all.Total)
}

func TestGetElement(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	resp, err := c.GetElement(ctx, &tablerpc.GetElementRequest{AtomicNumber: 94})
	require.NoError(t, err)
	assert.Equal(t, "Pu", resp.Element.Symbol)
	assert.Equal(t, "N/A", resp.Detail.Group)

	_, err = c.GetElement(ctx, &tablerpc.GetElementRequest{AtomicNumber: 50})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = c.GetElement(ctx, &tablerpc.GetElementRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetTable(t *testing.T) {
	c := newClient(t)

	resp, err := c.GetTable(context.Background(), &tablerpc.GetTableRequest{
		Filters: tablerpc.Filters{Categories: []string{"actinide"}},
		Active:  92,
	})
	require.NoError(t, err)
	assert.Equal(t, display.Counts{Matched: 1, FilteredOut: 27, Empty: 11*18 - 28}, resp.Counts)
	u := resp.Table.Cells[9][4]
	assert.Equal(t, display.Matched, u.State)
	assert.True(t, u.Active)
}

func TestGetTableInvalidFilter(t *testing.T) {
	c := newClient(t)
	_, err := c.GetTable(context.Background(), &tablerpc.GetTableRequest{
		Filters: tablerpc.Filters{States: []string{"plasma"}},
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "plasma")
}

func TestGetLegend(t *testing.T) {
	resp, err := newClient(t).GetLegend(context.Background(), &tablerpc.GetLegendRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 9)
	assert.Equal(t, display.Legend(), resp.Items)
}
