package data

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fieldplot/internal/model"
)

// ExampleChargesJSON is the built-in charge set used when no input is given.
const ExampleChargesJSON = `[{"value": 5, "positive": true, "position": [3, 3]}, {"value": 5, "positive": true, "position": [-3, -3]}, {"value": 7, "positive": false, "position": [5, -5]}]`

// ExampleCharges returns the parsed built-in charge set.
func ExampleCharges() []model.Charge {
	charges, err := ParseCharges([]byte(ExampleChargesJSON))
	if err != nil {
		panic(err)
	}
	return charges
}

// ChargeRecord matches the JSON shape of one charge:
//
//	{"value": 5, "positive": true, "position": [3, 3]}
type ChargeRecord struct {
	Value    float64    `json:"value"`
	Positive bool       `json:"positive"`
	Position [2]float64 `json:"position"`
}

func (r ChargeRecord) ToModel() (model.Charge, error) {
	return model.NewCharge(r.Value, model.SignFromBool(r.Positive), model.Point{X: r.Position[0], Y: r.Position[1]})
}

// RecordFromModel converts a charge back to its JSON shape.
func RecordFromModel(c model.Charge) ChargeRecord {
	return ChargeRecord{
		Value:    c.Value,
		Positive: c.Positive(),
		Position: [2]float64{c.Position.X, c.Position.Y},
	}
}

func LoadChargesJSON(path string) ([]model.Charge, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read charges file: %w", err)
	}
	return ParseCharges(raw)
}

// ParseCharges decodes a JSON array of charge records.
// Every field is required; any shape mismatch yields a *ParseError.
func ParseCharges(raw []byte) ([]model.Charge, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ParseError{Index: -1, Reason: "expected a JSON array of charges", Err: err}
	}
	if items == nil {
		return nil, &ParseError{Index: -1, Reason: "expected a JSON array of charges"}
	}

	out := make([]model.Charge, 0, len(items))
	for i, item := range items {
		c, err := parseRecord(i, item)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseRecord(idx int, raw json.RawMessage) (model.Charge, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Charge{}, &ParseError{Index: idx, Reason: "record must be an object", Err: err}
	}

	var rec ChargeRecord
	if err := decodeField(idx, fields, "value", &rec.Value); err != nil {
		return model.Charge{}, err
	}
	if err := decodeField(idx, fields, "positive", &rec.Positive); err != nil {
		return model.Charge{}, err
	}

	var pos []float64
	if err := decodeField(idx, fields, "position", &pos); err != nil {
		return model.Charge{}, err
	}
	if len(pos) != 2 {
		return model.Charge{}, &ParseError{Index: idx, Field: "position", Reason: fmt.Sprintf("expected 2 coordinates, got %d", len(pos))}
	}
	rec.Position = [2]float64{pos[0], pos[1]}

	c, err := rec.ToModel()
	if err != nil {
		return model.Charge{}, &ParseError{Index: idx, Field: invalidField(err), Reason: err.Error()}
	}
	return c, nil
}

// invalidField names the record field behind a model validation error.
func invalidField(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidValue):
		return "value"
	case errors.Is(err, model.ErrInvalidPosition):
		return "position"
	case errors.Is(err, model.ErrInvalidSign):
		return "positive"
	default:
		return ""
	}
}

func decodeField(idx int, fields map[string]json.RawMessage, name string, dst any) error {
	v, ok := fields[name]
	if !ok {
		return &ParseError{Index: idx, Field: name, Reason: "missing required field"}
	}
	// json.Unmarshal treats null as a no-op, which would silently leave a zero value.
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return &ParseError{Index: idx, Field: name, Reason: "must not be null"}
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return &ParseError{Index: idx, Field: name, Reason: "wrong type", Err: err}
	}
	return nil
}
