package main

import (
	"context"
	"flag"
	"time"

	"github.com/cockroachdb/errors"

	"elementhub/internal/catalogdb"
	"elementhub/pkg/catalog"
	"elementhub/pkg/database"
	"elementhub/pkg/logger"
)

func main() {
	var (
		in     = flag.String("in", "data/elements.csv", "input catalog (.csv or .json)")
		dbPath = flag.String("db", database.DefaultConfig().Path, "sqlite database path")
		seed   = flag.Bool("embedded", false, "import the embedded catalog instead of -in")
	)
	flag.Parse()

	_ = logger.Initialize(false, false)
	defer logger.Sync()
	log := logger.Component("import-csv")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	source := *in
	if *seed {
		source = ""
	}
	n, err := run(ctx, source, *dbPath)
	if err != nil {
		log.Fatalw("import failed", logger.FieldSource, source, logger.FieldError, err)
	}
	log.Infow("imported elements", logger.FieldCount, n, logger.FieldSource, sourceName(source), "db", *dbPath)
}

// run validates the whole catalog before touching the database, then replaces
// its contents. An empty in imports the embedded catalog.
func run(ctx context.Context, in, dbPath string) (int, error) {
	c := catalog.Default()
	if in != "" {
		var err error
		c, err = catalog.LoadFile(in)
		if err != nil {
			return 0, errors.Wrapf(err, "read %s", in)
		}
	}

	db, err := database.Open(database.Config{Path: dbPath})
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return 0, err
	}
	if err := catalogdb.NewRepo(db).ReplaceAll(ctx, c.Elements()); err != nil {
		return 0, err
	}
	return c.Len(), nil
}

func sourceName(in string) string {
	if in == "" {
		return "embedded"
	}
	return in
}
