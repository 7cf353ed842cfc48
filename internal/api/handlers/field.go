package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fieldplot/internal/analysis"
	"fieldplot/internal/api/models"
	"fieldplot/internal/config"
	"fieldplot/internal/data"
	"fieldplot/internal/model"
	"fieldplot/internal/plot"
	"fieldplot/internal/render"

	"github.com/gin-gonic/gin"
)

// Request limits keep a single call from tying up the server.
const (
	MaxSamplesPerAxis = 400
	MaxCanvasSize     = 4096
	MaxCharges        = 100
	MaxDensity        = 10
	// MaxChargeLines caps the streamlines started by "charges" seeding.
	MaxChargeLines = 500
)

// FieldHandler serves field evaluation and rendering.
type FieldHandler struct {
	engine *plot.Engine
	cache  *data.RenderCache
	log    *slog.Logger
}

// NewFieldHandler creates a field handler. cache may be nil to disable caching.
func NewFieldHandler(logger *slog.Logger, cache *data.RenderCache) *FieldHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldHandler{
		engine: plot.New(logger),
		cache:  cache,
		log:    logger,
	}
}

// EvaluateField handles POST /api/v1/field
func (h *FieldHandler) EvaluateField(c *gin.Context) {
	charges, cfg, ok := h.bindPlotRequest(c)
	if !ok {
		return
	}

	f, err := h.engine.Evaluate(charges, cfg)
	if err != nil {
		writeError(c, http.StatusBadRequest, "EVALUATION_ERROR", err.Error())
		return
	}

	ranked, err := analysis.RankByInfluence(f.Grid, charges, cfg.FieldParams())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "ANALYSIS_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.FieldResponse{
		Nx:        f.Grid.Nx,
		Ny:        f.Grid.Ny,
		X:         f.Rows(f.Grid.X),
		Y:         f.Rows(f.Grid.Y),
		Ex:        f.Rows(f.Ex),
		Ey:        f.Rows(f.Ey),
		Charges:   toRecords(charges),
		Summary:   toSummary(analysis.ComputeSummary(f)),
		Influence: toInfluence(ranked),
	})
}

// RenderPlot handles POST /api/v1/render and responds with a PNG.
func (h *FieldHandler) RenderPlot(c *gin.Context) {
	charges, cfg, ok := h.bindPlotRequest(c)
	if !ok {
		return
	}

	key, err := data.GenerateCacheKey(toRecords(charges), cfg)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "CACHE_KEY_ERROR", err.Error())
		return
	}
	if cached, found := h.cache.Get(key); found {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, "image/png", cached)
		return
	}

	res, err := h.engine.Run(charges, cfg)
	if err != nil {
		writeError(c, http.StatusBadRequest, "RENDER_ERROR", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, res.Image); err != nil {
		writeError(c, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
		return
	}
	h.cache.Set(key, buf.Bytes())

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// bindPlotRequest decodes the body, parses the charges and builds a
// validated config. It writes the error response itself when ok is false.
func (h *FieldHandler) bindPlotRequest(c *gin.Context) ([]model.Charge, *config.Config, bool) {
	var req models.PlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return nil, nil, false
	}

	charges, err := data.ParseCharges(req.Charges)
	if err != nil {
		var pe *data.ParseError
		details := map[string]interface{}{}
		if errors.As(err, &pe) {
			details["index"] = pe.Index
			if pe.Field != "" {
				details["field"] = pe.Field
			}
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CHARGES",
				Message: err.Error(),
				Details: details,
			},
		})
		return nil, nil, false
	}
	if len(charges) > MaxCharges {
		writeError(c, http.StatusBadRequest, "TOO_MANY_CHARGES", fmt.Sprintf("at most %d charges are allowed", MaxCharges))
		return nil, nil, false
	}

	cfg := config.Merge(config.Default(), req.ToConfig())
	if err := cfg.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error())
		return nil, nil, false
	}
	if cfg.Grid.SamplesX > MaxSamplesPerAxis || cfg.Grid.SamplesY > MaxSamplesPerAxis {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", fmt.Sprintf("at most %d samples per axis are allowed", MaxSamplesPerAxis))
		return nil, nil, false
	}
	if cfg.Render.Width > MaxCanvasSize || cfg.Render.Height > MaxCanvasSize {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", fmt.Sprintf("canvas must be at most %dx%d", MaxCanvasSize, MaxCanvasSize))
		return nil, nil, false
	}

	if cfg.Render.Density > MaxDensity {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", fmt.Sprintf("density must be at most %d", MaxDensity))
		return nil, nil, false
	}
	if cfg.Render.Seeding == render.SeedingCharges {
		seeder := render.ChargeSeeder{LinesPerUnit: cfg.Render.LinesPerCharge}
		if n := seeder.Count(charges); n > MaxChargeLines {
			writeError(c, http.StatusBadRequest, "INVALID_CONFIG",
				fmt.Sprintf("charge seeding would start %d lines; at most %d are allowed", n, MaxChargeLines))
			return nil, nil, false
		}
	}

	h.log.Debug("plot request", "charges", len(charges), "samples_x", cfg.Grid.SamplesX, "samples_y", cfg.Grid.SamplesY)
	return charges, cfg, true
}

func toRecords(charges []model.Charge) []data.ChargeRecord {
	out := make([]data.ChargeRecord, len(charges))
	for i, ch := range charges {
		out[i] = data.RecordFromModel(ch)
	}
	return out
}

func toSummary(s analysis.FieldSummary) models.SummaryResponse {
	nulls := make([][2]float64, len(s.NullCandidates))
	for i, p := range s.NullCandidates {
		nulls[i] = [2]float64{p.X, p.Y}
	}
	return models.SummaryResponse{
		MinMagnitude:   s.MinMagnitude,
		MaxMagnitude:   s.MaxMagnitude,
		MeanMagnitude:  s.MeanMagnitude,
		P05Magnitude:   s.P05Magnitude,
		P95Magnitude:   s.P95Magnitude,
		Strongest:      [2]float64{s.Strongest.X, s.Strongest.Y},
		NullCandidates: nulls,
	}
}

func toInfluence(ranked []analysis.ChargeInfluence) []models.InfluenceResponse {
	out := make([]models.InfluenceResponse, len(ranked))
	for i, r := range ranked {
		out[i] = models.InfluenceResponse{
			Index:         r.Index,
			Charge:        data.RecordFromModel(r.Charge),
			MeanMagnitude: r.MeanMagnitude,
			Share:         r.Share,
		}
	}
	return out
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
