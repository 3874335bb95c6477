package battle

import (
	"bytes"
	"encoding/json"
)

// CarriedInput holds the raw round-1 echo fields of a round-2 request.
// An absent or null field decodes to a nil field in the CarriedState.
type CarriedInput struct {
	PlayerR1       json.RawMessage `json:"player_r1_deployments"`
	OpponentR1     json.RawMessage `json:"ai_r1_deployments"`
	OpponentR2Data json.RawMessage `json:"ai_r2_data_for_r2"`
	PlayerPool     json.RawMessage `json:"player_r2_total_pool"`
}

// Parse decodes the echo fields. Present but ill-shaped fields are a
// MalformedRequest; missing ones are left for CarriedState.Check.
func (in CarriedInput) Parse() (CarriedState, error) {
	var state CarriedState
	var err error
	if state.PlayerR1, err = parseCarriedList(in.PlayerR1, "player_r1_deployments"); err != nil {
		return state, err
	}
	if state.OpponentR1, err = parseCarriedList(in.OpponentR1, "ai_r1_deployments"); err != nil {
		return state, err
	}

	if !absent(in.OpponentR2Data) {
		var data struct {
			Total json.RawMessage `json:"total_r2_pool"`
		}
		if err := json.Unmarshal(in.OpponentR2Data, &data); err != nil {
			return state, newError(MalformedRequest, "ai_r2_data_for_r2 must be an object.")
		}
		if !absent(data.Total) {
			n, ok := parseInt(data.Total)
			if !ok {
				return state, newError(MalformedRequest, "ai_r2_data_for_r2.total_r2_pool must be an integer.")
			}
			state.OpponentPool = &n
		}
	}

	if !absent(in.PlayerPool) {
		n, ok := parseInt(in.PlayerPool)
		if !ok {
			return state, newError(MalformedRequest, "player_r2_total_pool must be an integer.")
		}
		state.PlayerPool = &n
	}
	return state, nil
}

func parseCarriedList(raw json.RawMessage, field string) ([]Deployment, error) {
	if absent(raw) {
		return nil, nil
	}
	var list []Deployment
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, newError(MalformedRequest, "%s must be a list of deployments.", field)
	}
	return nonNil(list), nil
}

func absent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// Merge fills the fields missing from c with those of fallback.
func (c CarriedState) Merge(fallback CarriedState) CarriedState {
	if c.PlayerR1 == nil {
		c.PlayerR1 = fallback.PlayerR1
	}
	if c.OpponentR1 == nil {
		c.OpponentR1 = fallback.OpponentR1
	}
	if c.PlayerPool == nil {
		c.PlayerPool = fallback.PlayerPool
	}
	if c.OpponentPool == nil {
		c.OpponentPool = fallback.OpponentPool
	}
	return c
}

// Complete reports whether every carried field is present.
func (c CarriedState) Complete() bool {
	return c.PlayerR1 != nil && c.OpponentR1 != nil && c.PlayerPool != nil && c.OpponentPool != nil
}
