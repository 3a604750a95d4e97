// SPDX-License-Identifier: AGPL-3.0-or-later

// Package points loads the point table that weights graded items.
package points

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Weights maps an item name to its point value. Missing names are worth 1.
type Weights map[string]float64

// Weight returns the weight for name, defaulting to 1.
func (w Weights) Weight(name string) float64 {
	if v, ok := w[name]; ok {
		return v
	}
	return 1
}

// Table holds the weights for functionality blocks and testing items.
type Table struct {
	Functionality Weights
	Testing       Weights
}

// rawTable is the on-disk shape: each section is a list of [name, weight] pairs.
type rawTable struct {
	Functionality []any `json:"functionality" yaml:"functionality"`
	Testing       []any `json:"testing" yaml:"testing"`
}

// Load reads a point table from a JSON file, or YAML when the extension is
// .yaml or .yml.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read point table: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON point table.
func ParseJSON(data []byte) (*Table, error) {
	var raw rawTable
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse point table JSON: %w", err)
	}
	return raw.build()
}

// ParseYAML parses a YAML point table with the same shape as the JSON one.
func ParseYAML(data []byte) (*Table, error) {
	var raw rawTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse point table YAML: %w", err)
	}
	return raw.build()
}

func (r rawTable) build() (*Table, error) {
	fn, err := buildWeights("functionality", r.Functionality)
	if err != nil {
		return nil, err
	}
	testing, err := buildWeights("testing", r.Testing)
	if err != nil {
		return nil, err
	}
	return &Table{Functionality: fn, Testing: testing}, nil
}

func buildWeights(section string, entries []any) (Weights, error) {
	w := make(Weights, len(entries))
	for i, entry := range entries {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("%s entry at index %d must be a [name, weight] pair", section, i)
		}
		name, ok := pair[0].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("%s entry at index %d has an invalid name", section, i)
		}
		weight, ok := toFloat(pair[1])
		if !ok {
			return nil, fmt.Errorf("%s entry %s has a non-numeric weight", section, name)
		}
		if weight <= 0 {
			return nil, fmt.Errorf("%s entry %s must have a positive weight, got %v", section, name, weight)
		}
		if _, dup := w[name]; dup {
			return nil, fmt.Errorf("duplicate %s entry: %s", section, name)
		}
		w[name] = weight
	}
	return w, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
