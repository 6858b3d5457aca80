package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/internal/elements"
	"elementhub/pkg/catalog"
	"elementhub/pkg/logger"
	"elementhub/pkg/utils"
)

func main() {
	var (
		out    = flag.String("out", "data/elements.csv", "output CSV path, - for stdout")
		dbPath = flag.String("db", "", "sqlite database to export (default: embedded catalog)")
		file   = flag.String("catalog", "", "JSON or CSV catalog to export")
	)
	flag.Parse()

	_ = logger.Initialize(false, false)
	defer logger.Sync()
	log := logger.Component("export-csv")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, source, err := run(ctx, utils.DBConfig{Path: *dbPath, CatalogFile: *file}, *out)
	if err != nil {
		log.Fatalw("export failed", logger.FieldError, err)
	}
	log.Infow("exported elements", logger.FieldCount, n, logger.FieldSource, source, "out", *out)
}

func run(ctx context.Context, cfg utils.DBConfig, outPath string) (int, string, error) {
	c, source, err := elements.LoadCatalog(ctx, cfg)
	if err != nil {
		return 0, "", err
	}

	var w io.Writer = os.Stdout
	if outPath != "-" {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return 0, "", errors.Wrap(err, "create output dir")
		}
		f, err := os.Create(outPath)
		if err != nil {
			return 0, "", errors.Wrap(err, "create output")
		}
		defer f.Close()
		w = f
	}

	if err := catalog.WriteCSV(w, c.Elements()); err != nil {
		return 0, "", err
	}
	return c.Len(), source, nil
}
