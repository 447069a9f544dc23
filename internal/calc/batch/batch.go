package batch

import (
	"errors"
	"fmt"

	pergola "Pergulator/internal/calc/pergola"
)

var ErrEmptyBatch = errors.New("no items")

type PergolaBatchInput struct {
	Items []pergola.Input `json:"items"`
}

type PergolaBatchResult struct {
	Results []pergola.Result `json:"results"`
}

// CalculatePergola stops at the first item that fails.
func CalculatePergola(in PergolaBatchInput) (PergolaBatchResult, error) {
	if len(in.Items) == 0 {
		return PergolaBatchResult{}, ErrEmptyBatch
	}
	out := PergolaBatchResult{Results: make([]pergola.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := pergola.Calculate(item)
		if err != nil {
			return PergolaBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
