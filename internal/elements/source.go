package elements

import (
	"context"

	"github.com/cockroachdb/errors"

	"elementhub/internal/catalogdb"
	"elementhub/pkg/catalog"
	"elementhub/pkg/database"
	"elementhub/pkg/utils"
)

// LoadCatalog picks the catalog source from cfg: a JSON/CSV file, then a
// sqlite database, then the embedded fixture. It also returns a short
// description of the source for logs.
func LoadCatalog(ctx context.Context, cfg utils.DBConfig) (*catalog.Catalog, string, error) {
	switch {
	case cfg.CatalogFile != "":
		c, err := catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			return nil, "", err
		}
		return c, "file:" + cfg.CatalogFile, nil

	case cfg.Path != "":
		db, err := database.Open(database.Config{Path: cfg.Path})
		if err != nil {
			return nil, "", err
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			return nil, "", err
		}
		repo := catalogdb.NewRepo(db)
		c, err := repo.Catalog(ctx)
		if err != nil {
			return nil, "", errors.Wrapf(err, "load catalog from %s", cfg.Path)
		}
		if c.Len() == 0 {
			return nil, "", errors.Wrapf(catalog.ErrInvalidCatalog, "%s holds no elements; run import-csv first", cfg.Path)
		}
		return c, "sqlite:" + cfg.Path, nil

	default:
		return catalog.Default(), "embedded", nil
	}
}
