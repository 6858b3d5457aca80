package catalogdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elementhub/pkg/catalog"
	"elementhub/pkg/database"
	"elementhub/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "elements.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestReplaceAllAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))

	src := catalog.Default().Elements()
	require.NoError(t, repo.ReplaceAll(ctx, src))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(src), n)

	got, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, src, got, "fixture is already sorted by atomic number")

	c, err := repo.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().IDs(), c.IDs())
}

func TestReplaceAllOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))

	require.NoError(t, repo.ReplaceAll(ctx, catalog.Default().Elements()))
	require.NoError(t, repo.ReplaceAll(ctx, catalog.Default().Elements()[:2]))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplaceAllRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	require.NoError(t, repo.ReplaceAll(ctx, catalog.Default().Elements()))

	bad := catalog.Default().Elements()[:2]
	bad[1].AtomicNumber = 1
	err := repo.ReplaceAll(ctx, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrInvalidCatalog))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 29, n, "previous catalog kept")
}

func TestGetByNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(openTestDB(t))
	require.NoError(t, repo.ReplaceAll(ctx, catalog.Default().Elements()))

	u, err := repo.GetByNumber(ctx, 92)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Uranium", u.Name)
	assert.Nil(t, u.Group)
	assert.Equal(t, models.Actinide, u.Category)

	missing, err := repo.GetByNumber(ctx, 7000)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
