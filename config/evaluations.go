// Package config loads offline evaluation exports.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"call-insights/internal/models"
)

// LoadFromFile reads a JSON array of evaluation records, as exported from call_evaluations
func LoadFromFile(path string) ([]models.EvaluationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []models.EvaluationRecord
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode evaluations from %s: %w", path, err)
	}

	for i, rec := range records {
		if rec.EvaluatedAt.IsZero() {
			return nil, fmt.Errorf("evaluation %d (%s) in %s has no evaluated_at", i, rec.ID, path)
		}
	}
	return records, nil
}
