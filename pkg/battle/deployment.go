package battle

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Deployment is a validated stack of troops placed on one cell.
type Deployment struct {
	Owner    Owner    `json:"owner"`
	UnitType UnitType `json:"unit_type"`
	Count    int      `json:"unit_count"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
}

// Coord returns the cell the deployment targets.
func (d Deployment) Coord() Coord {
	return Coord{X: d.X, Y: d.Y}
}

// DeploymentInput is one deployment record as submitted by a client.
// Fields are kept raw so that type errors surface as the matching
// validation kind rather than a decode failure.
type DeploymentInput struct {
	UnitType  json.RawMessage `json:"unit_type"`
	UnitCount json.RawMessage `json:"unit_count"`
	X         json.RawMessage `json:"x"`
	Y         json.RawMessage `json:"y"`
}

// ParseSubmission decodes a raw deployment list. Anything other than a JSON
// array of objects is a MalformedRequest.
func ParseSubmission(raw json.RawMessage, field string) ([]DeploymentInput, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, newError(MalformedRequest, "Missing %s in request.", field)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, newError(MalformedRequest, "%s must be a list of deployments.", field)
	}
	inputs := make([]DeploymentInput, 0, len(items))
	for i, item := range items {
		var in DeploymentInput
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, newError(MalformedRequest, "%s[%d] must be an object.", field, i)
		}
		if err := json.Unmarshal(item, &in); err != nil {
			return nil, newError(MalformedRequest, "%s[%d] must be an object.", field, i)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// parseInt accepts a JSON integer, an integral JSON number, or a string
// holding an integer.
func parseInt(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n, true
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return 0, false
		}
		return int(f), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func parseUnitTypeRaw(raw json.RawMessage) (UnitType, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return ParseUnitType(s)
}
