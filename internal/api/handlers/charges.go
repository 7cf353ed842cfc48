package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fieldplot/internal/api/models"
	"fieldplot/internal/data"

	"github.com/gin-gonic/gin"
)

// ExampleSetID names the built-in charge set, which is always available.
const ExampleSetID = "example"

// ChargesHandler serves charge presets stored as JSON files in a directory.
type ChargesHandler struct {
	dir string
	log *slog.Logger
}

// NewChargesHandler creates a handler for presets in dir.
// An empty dir falls back to CHARGES_DIR, then ./examples/charges.
func NewChargesHandler(dir string, logger *slog.Logger) *ChargesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if dir == "" {
		dir = os.Getenv("CHARGES_DIR")
	}
	if dir == "" {
		dir = filepath.Join("examples", "charges")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	logger.Info("charge presets directory", "dir", dir)
	return &ChargesHandler{dir: dir, log: logger}
}

// Dir returns the preset directory path.
func (h *ChargesHandler) Dir() string {
	return h.dir
}

// ListChargeSets handles GET /api/v1/charges
func (h *ChargesHandler) ListChargeSets(c *gin.Context) {
	sets := []models.ChargeSetInfo{{
		ID:    ExampleSetID,
		Name:  "Built-in example",
		Count: len(data.ExampleCharges()),
	}}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		// a missing preset directory is not an error; the example is still served
		h.log.Warn("failed to read charge presets", "dir", h.dir, "err", err)
		c.JSON(http.StatusOK, gin.H{"charge_sets": sets})
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(h.dir, name)
		charges, err := data.LoadChargesJSON(path)
		if err != nil {
			h.log.Warn("skipping invalid charge preset", "file", path, "err", err)
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		sets = append(sets, models.ChargeSetInfo{
			ID:    id,
			Name:  id,
			File:  path,
			Count: len(charges),
		})
	}

	c.JSON(http.StatusOK, gin.H{"charge_sets": sets})
}

// GetChargeSet handles GET /api/v1/charges/:id
func (h *ChargesHandler) GetChargeSet(c *gin.Context) {
	id := c.Param("id")
	if id == ExampleSetID {
		charges := data.ExampleCharges()
		c.JSON(http.StatusOK, models.ChargeSetResponse{
			ChargeSetInfo: models.ChargeSetInfo{ID: id, Name: "Built-in example", Count: len(charges)},
			Charges:       toRecords(charges),
		})
		return
	}

	// ids are bare file stems; reject anything that could escape the directory
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		writeError(c, http.StatusBadRequest, "INVALID_ID", "invalid charge set id")
		return
	}

	path := filepath.Join(h.dir, id+".json")
	charges, err := data.LoadChargesJSON(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "charge set not found: "+id)
			return
		}
		writeError(c, http.StatusUnprocessableEntity, "INVALID_CHARGES", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ChargeSetResponse{
		ChargeSetInfo: models.ChargeSetInfo{ID: id, Name: id, File: path, Count: len(charges)},
		Charges:       toRecords(charges),
	})
}
