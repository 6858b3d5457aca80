package elements

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"elementhub/internal/display"
	"elementhub/internal/filter"
	"elementhub/pkg/catalog"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/elements", h.list)            // GET /api/elements
	rg.GET("/elements/:number", h.getByID) // GET /api/elements/:number
	rg.GET("/table", h.table)              // GET /api/table
	rg.GET("/legend", h.legend)            // GET /api/legend
}

func (h *Handler) list(c *gin.Context) {
	fs, err := ParseQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}

	items := h.Service.List(fs)
	c.JSON(http.StatusOK, gin.H{
		"total":          len(items),
		"filters":        fs,
		"filter_summary": display.Summarize(fs),
		"items":          items,
	})
}

func (h *Handler) getByID(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("number"))
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "atomic number must be a positive integer"})
		return
	}

	e, err := h.Service.Get(n)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"element": e,
		"detail":  display.NewDetail(e),
	})
}

func (h *Handler) table(c *gin.Context) {
	fs, err := ParseQuery(c)
	if err != nil {
		writeError(c, err)
		return
	}
	active, err := parseActive(c.Query("active"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := h.Service.Table(fs, active)
	c.JSON(http.StatusOK, gin.H{
		"filters":        fs,
		"filter_summary": display.Summarize(fs),
		"counts":         t.Counts(),
		"table":          t,
	})
}

func (h *Handler) legend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Service.Legend()})
}

// ParseQuery reads category/state/period/block filters from the query
// string. Both repeated keys (period=1&period=2) and comma lists
// (period=1,2) are accepted, as are the plural key names.
func ParseQuery(c *gin.Context) (filter.Set, error) {
	values := func(key, plural string) []string {
		return append(c.QueryArray(key), c.QueryArray(plural)...)
	}
	return filter.Parse(
		values("category", "categories"),
		values("state", "states"),
		values("period", "periods"),
		values("block", "blocks"),
	)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseActive reads the highlighted atomic number; empty means none.
func parseActive(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Newf("active must be a non-negative integer, got %q", s)
	}
	return n, nil
}
