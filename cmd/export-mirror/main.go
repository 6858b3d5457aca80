package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/internal/elements"
	"elementhub/pkg/logger"
	"elementhub/pkg/utils"
)

func main() {
	var (
		outPath = flag.String("out", "data/mirror.json", "output JSON path")
		dbPath  = flag.String("db", "", "sqlite catalog (default: embedded catalog)")
		file    = flag.String("catalog", "", "JSON or CSV catalog file")
		cutoff  = flag.Int("cutoff", 0, "highest atomic number on the grid (default 92)")
	)
	flag.Parse()

	_ = logger.Initialize(false, false)
	defer logger.Sync()
	log := logger.Component("export-mirror")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := run(ctx, utils.DBConfig{Path: *dbPath, CatalogFile: *file}, *cutoff, *outPath, time.Now())
	if err != nil {
		log.Fatalw("export failed", logger.FieldError, err)
	}
	log.Infow("exported snapshot", logger.FieldCount, len(snap.Elements), logger.FieldSource, snap.Source, "out", *outPath)
}

func run(ctx context.Context, cfg utils.DBConfig, cutoff int, outPath string, now time.Time) (elements.Snapshot, error) {
	cat, source, err := elements.LoadCatalog(ctx, cfg)
	if err != nil {
		return elements.Snapshot{}, err
	}
	svc, err := elements.NewService(cat, elements.Options{Cutoff: cutoff})
	if err != nil {
		return elements.Snapshot{}, err
	}
	snap := svc.Snapshot(source, now)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return elements.Snapshot{}, errors.Wrap(err, "mkdir")
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return elements.Snapshot{}, errors.Wrap(err, "marshal")
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return elements.Snapshot{}, errors.Wrap(err, "write")
	}
	return snap, nil
}
