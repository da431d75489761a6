package analysis

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform success response: the result's fields are
// flattened next to success, analysisTime and aiModel.
type Envelope[T any] struct {
	Result       T
	AnalysisTime int64
	AIModel      string
}

// Fallback reports whether the result came from a static template.
func (e Envelope[T]) Fallback() bool { return e.AIModel == FallbackModel }

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(e.Result)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("envelope result must be an object: %w", err)
	}
	fields["success"] = json.RawMessage("true")
	if fields["analysisTime"], err = json.Marshal(e.AnalysisTime); err != nil {
		return nil, err
	}
	if fields["aiModel"], err = json.Marshal(e.AIModel); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
