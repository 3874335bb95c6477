package battle

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource returns queued Intn values (clamped to n) and never shuffles.
type scriptedSource struct {
	ints []int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		return n - 1
	}
	return v
}

func (s *scriptedSource) Shuffle(int, func(i, j int)) {}

// input builds a raw deployment record the way a JSON client would send it.
func input(unitType string, count, x, y int) DeploymentInput {
	return DeploymentInput{
		UnitType:  json.RawMessage(fmt.Sprintf("%q", unitType)),
		UnitCount: json.RawMessage(fmt.Sprint(count)),
		X:         json.RawMessage(fmt.Sprint(x)),
		Y:         json.RawMessage(fmt.Sprint(y)),
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, kind, verr.Kind, "message: %s", verr.Message)
	return verr
}
