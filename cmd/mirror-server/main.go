package main

import (
	"flag"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"elementhub/internal/elements"
	"elementhub/internal/requestlog"
	"elementhub/pkg/logger"
)

func main() {
	var (
		addr     = flag.String("addr", ":9000", "listen address")
		dataPath = flag.String("data", "data/mirror.json", "snapshot written by export-mirror")
	)
	flag.Parse()

	_ = logger.Initialize(false, false)
	defer logger.Sync()
	log := logger.Component("mirror")

	gin.SetMode(gin.ReleaseMode)
	log.Infow("mirror-server listening", logger.FieldAddress, *addr, logger.FieldSource, *dataPath)
	if err := http.ListenAndServe(*addr, newRouter(*dataPath)); err != nil {
		log.Fatalw("mirror-server stopped", logger.FieldError, err)
	}
}

// newRouter re-reads the snapshot on every request so a fresh export is
// picked up without a restart. A broken file is a 500, never a partial body.
func newRouter(dataPath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestlog.Middleware(logger.Component("mirror")))

	load := func(c *gin.Context) (elements.Snapshot, bool) {
		f, err := os.Open(dataPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read snapshot: " + err.Error()})
			return elements.Snapshot{}, false
		}
		defer f.Close()
		snap, err := elements.ReadSnapshot(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid snapshot: " + err.Error()})
			return elements.Snapshot{}, false
		}
		return snap, true
	}

	r.GET("/snapshot", func(c *gin.Context) {
		if snap, ok := load(c); ok {
			c.JSON(http.StatusOK, snap)
		}
	})

	r.GET("/snapshot/elements/:number", func(c *gin.Context) {
		n, err := strconv.Atoi(c.Param("number"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "atomic number must be an integer"})
			return
		}
		snap, ok := load(c)
		if !ok {
			return
		}
		for _, e := range snap.Elements {
			if e.AtomicNumber == n {
				c.JSON(http.StatusOK, e)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
