package models

import "fieldplot/internal/data"

// FieldResponse is the evaluated field, laid out as Ny rows of Nx values
// (the same shape as a meshgrid).
type FieldResponse struct {
	Nx      int                 `json:"nx"`
	Ny      int                 `json:"ny"`
	X       [][]float64         `json:"x"`
	Y       [][]float64         `json:"y"`
	Ex      [][]float64         `json:"ex"`
	Ey      [][]float64         `json:"ey"`
	Charges []data.ChargeRecord `json:"charges"`

	Summary   SummaryResponse     `json:"summary"`
	Influence []InfluenceResponse `json:"influence"`
}

// SummaryResponse is the |E| distribution over the grid.
type SummaryResponse struct {
	MinMagnitude   float64      `json:"min_magnitude"`
	MaxMagnitude   float64      `json:"max_magnitude"`
	MeanMagnitude  float64      `json:"mean_magnitude"`
	P05Magnitude   float64      `json:"p05_magnitude"`
	P95Magnitude   float64      `json:"p95_magnitude"`
	Strongest      [2]float64   `json:"strongest"`
	NullCandidates [][2]float64 `json:"null_candidates"`
}

// InfluenceResponse is one charge's share of the field, strongest first.
type InfluenceResponse struct {
	Index         int               `json:"index"`
	Charge        data.ChargeRecord `json:"charge"`
	MeanMagnitude float64           `json:"mean_magnitude"`
	Share         float64           `json:"share"`
}

// ChargeSetInfo describes one charge preset file.
type ChargeSetInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	File  string `json:"file,omitempty"`
	Count int    `json:"count"`
}

// ChargeSetResponse is a preset with its charges.
type ChargeSetResponse struct {
	ChargeSetInfo
	Charges []data.ChargeRecord `json:"charges"`
}

// ParameterGroup lists the tunable parameters of one config section.
type ParameterGroup struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a request parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "bool", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
