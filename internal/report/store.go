// SPDX-License-Identifier: AGPL-3.0-or-later
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bartekus/autograde/internal/projection"
)

// Encode renders the report as indented JSON.
func Encode(r Report) ([]byte, error) {
	if r.Tests == nil {
		r.Tests = []Item{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write stores the report at path. The file is replaced atomically so the
// platform never observes a half-written report.
func Write(path string, r Report) error {
	data, err := Encode(r)
	if err != nil {
		return err
	}
	if err := projection.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Read loads a report previously produced by Write.
func Read(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r Report
	if err := json.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &r, nil
}
