package elements

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/internal/catalogdb"
	"elementhub/internal/display"
	"elementhub/internal/filter"
	"elementhub/pkg/catalog"
	"elementhub/pkg/database"
	"elementhub/pkg/models"
	"elementhub/pkg/utils"
)

func newService(t *testing.T, cacheSize int) *Service {
	t.Helper()
	svc, err := NewService(catalog.Default(), Options{CacheSize: cacheSize})
	require.NoError(t, err)
	return svc
}

func TestServiceTableMatchesCore(t *testing.T) {
	cached := newService(t, 4)
	uncached := newService(t, 0)

	sets := []filter.Set{
		{},
		{Categories: []models.Category{models.NobleGas}},
		{Periods: []int{1}, Blocks: []models.Block{models.BlockS}},
		{Blocks: []models.Block{models.BlockS}, Periods: []int{1}},
		{States: []models.PhysicalState{models.Liquid}},
	}
	for _, s := range sets {
		for _, active := range []int{0, 2, 92} {
			a := cached.Table(s, active)
			b := uncached.Table(s, active)
			assert.Equal(t, b, a, "filters %s active %d", s.Key(), active)
		}
	}
	assert.Equal(t, 4, cached.Stats().CachedKeys, "order-insensitive keys share a slot")
}

func TestServiceMemoDoesNotLeakActive(t *testing.T) {
	svc := newService(t, 2)
	first := svc.Table(filter.Set{}, 1)
	second := svc.Table(filter.Set{}, 2)

	assert.True(t, first.Cells[0][0].Active)
	assert.False(t, second.Cells[0][0].Active)
	assert.True(t, second.Cells[0][17].Active)
}

func TestServiceList(t *testing.T) {
	svc := newService(t, 0)
	got := svc.List(filter.Set{Categories: []models.Category{models.Actinide}})
	require.Len(t, got, 2)
	assert.Equal(t, 92, got[0].AtomicNumber)
	assert.Equal(t, 94, got[1].AtomicNumber)

	assert.Len(t, svc.List(filter.Set{}), 29)
}

func TestServiceGet(t *testing.T) {
	svc := newService(t, 0)
	e, err := svc.Get(26)
	require.NoError(t, err)
	assert.Equal(t, "Fe", e.Symbol)

	_, err = svc.Get(27)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestServiceStats(t *testing.T) {
	svc := newService(t, 0)
	st := svc.Stats()
	assert.Equal(t, Stats{Elements: 29, Placed: 28, Cutoff: 92}, st)

	wide, err := NewService(catalog.Default(), Options{Cutoff: 118})
	require.NoError(t, err)
	assert.Equal(t, 29, wide.Stats().Placed)
	assert.Equal(t, display.Matched, wide.Table(filter.Set{}, 0).Cells[9][6].State)
}

func TestLoadCatalogSources(t *testing.T) {
	ctx := context.Background()

	c, src, err := LoadCatalog(ctx, utils.DBConfig{})
	require.NoError(t, err)
	assert.Equal(t, "embedded", src)
	assert.Equal(t, 29, c.Len())

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "elements.db")
	db, err := database.Open(database.Config{Path: dbPath})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, catalogdb.NewRepo(db).ReplaceAll(ctx, catalog.Default().Elements()[:5]))
	require.NoError(t, db.Close())

	c, src, err = LoadCatalog(ctx, utils.DBConfig{Path: dbPath})
	require.NoError(t, err)
	assert.Equal(t, "sqlite:"+dbPath, src)
	assert.Equal(t, 5, c.Len())

	csvPath := filepath.Join(dir, "elements.csv")
	f, err := os.Create(csvPath)
	require.NoError(t, err)
	require.NoError(t, catalog.WriteCSV(f, catalog.Default().Elements()[:3]))
	require.NoError(t, f.Close())

	c, src, err = LoadCatalog(ctx, utils.DBConfig{Path: dbPath, CatalogFile: csvPath})
	require.NoError(t, err)
	assert.Equal(t, "file:"+csvPath, src)
	assert.Equal(t, 3, c.Len())
}

func TestLoadCatalogEmptyDatabase(t *testing.T) {
	_, _, err := LoadCatalog(context.Background(), utils.DBConfig{Path: filepath.Join(t.TempDir(), "empty.db")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInvalidCatalog))
}
