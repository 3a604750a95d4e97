// SPDX-License-Identifier: AGPL-3.0-or-later
package outcome

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	keyOk  = "Ok"
	keyErr = "Err"
)

type wireTest struct {
	Loc    *string `json:"loc"`
	Passed *bool   `json:"passed"`
}

type wireBlock struct {
	Name  *string    `json:"name"`
	Loc   *string    `json:"loc"`
	Error *bool      `json:"error"`
	Tests []wireTest `json:"tests"`
}

type wireRecord struct {
	Code   *string         `json:"code"`
	Tests  *string         `json:"tests"`
	Result json.RawMessage `json:"result"`
}

// LoadRecords reads a JSON array of execution records from disk.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening results file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeRecords(f)
}

// DecodeRecords parses a JSON array of execution records.
// Errors name the index of the offending record.
func DecodeRecords(r io.Reader) ([]Record, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	records := make([]Record, 0, len(raw))
	for i, msg := range raw {
		var rec Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// UnmarshalJSON decodes the {"code", "tests", "result"} wire shape.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Code == nil {
		return errors.New(`missing "code"`)
	}
	if w.Tests == nil {
		return errors.New(`missing "tests"`)
	}
	if len(w.Result) == 0 || bytes.Equal(bytes.TrimSpace(w.Result), []byte("null")) {
		return errors.New(`missing "result"`)
	}

	res, err := decodeResult(w.Result)
	if err != nil {
		return fmt.Errorf("result: %w", err)
	}

	*r = Record{ImplementationID: *w.Code, TestSuiteID: *w.Tests, Result: res}
	return nil
}

// MarshalJSON encodes the record in the same shape UnmarshalJSON accepts.
func (r Record) MarshalJSON() ([]byte, error) {
	var result map[string]any
	switch v := r.Result.(type) {
	case Success:
		blocks := make([]map[string]any, 0, len(v.Blocks))
		for _, b := range v.Blocks {
			tests := make([]map[string]any, 0, len(b.Tests))
			for _, t := range b.Tests {
				tests = append(tests, map[string]any{"loc": t.Location, "passed": t.Passed})
			}
			blocks = append(blocks, map[string]any{
				"name":  b.Name,
				"loc":   b.Location,
				"error": b.Errored,
				"tests": tests,
			})
		}
		result = map[string]any{keyOk: blocks}
	case Failure:
		result = map[string]any{keyErr: v.Reason}
	default:
		return nil, fmt.Errorf("record %q has no result", r.ImplementationID)
	}

	return json.Marshal(map[string]any{
		"code":   r.ImplementationID,
		"tests":  r.TestSuiteID,
		"result": result,
	})
}

func decodeResult(data []byte) (Result, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	okMsg, hasOk := fields[keyOk]
	errMsg, hasErr := fields[keyErr]
	switch {
	case hasOk && hasErr:
		return nil, errors.New(`both "Ok" and "Err" are set`)
	case hasErr:
		reason, err := decodeReason(errMsg)
		if err != nil {
			return nil, fmt.Errorf("Err: %w", err)
		}
		return Failure{Reason: reason}, nil
	case hasOk:
		blocks, err := decodeBlocks(okMsg)
		if err != nil {
			return nil, fmt.Errorf("Ok: %w", err)
		}
		return Success{Blocks: blocks}, nil
	default:
		return nil, errors.New(`expected one of "Ok" or "Err"`)
	}
}

func decodeBlocks(data []byte) ([]BlockOutcome, error) {
	var wire []wireBlock
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	blocks := make([]BlockOutcome, 0, len(wire))
	for i, wb := range wire {
		if wb.Name == nil {
			return nil, fmt.Errorf(`block %d: missing "name"`, i)
		}
		if wb.Loc == nil {
			return nil, fmt.Errorf(`block %d: missing "loc"`, i)
		}
		b := BlockOutcome{Name: *wb.Name, Location: *wb.Loc}
		if wb.Error != nil {
			b.Errored = *wb.Error
		}
		for j, wt := range wb.Tests {
			if wt.Loc == nil {
				return nil, fmt.Errorf(`block %d: test %d: missing "loc"`, i, j)
			}
			if wt.Passed == nil {
				return nil, fmt.Errorf(`block %d: test %d: missing "passed"`, i, j)
			}
			b.Tests = append(b.Tests, TestOutcome{Location: *wt.Loc, Passed: *wt.Passed})
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// decodeReason accepts either a plain string or a single-key object such as
// {"Compile": "unbound identifier"}, which becomes "Compile: unbound identifier".
func decodeReason(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", errors.New("expected a string or an object")
	}
	if len(obj) != 1 {
		kinds := make([]string, 0, len(obj))
		for k := range obj {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		return "", fmt.Errorf("expected a single failure kind, got [%s]", strings.Join(kinds, ", "))
	}

	for kind, detail := range obj {
		var text string
		if err := json.Unmarshal(detail, &text); err != nil {
			var buf bytes.Buffer
			if err := json.Compact(&buf, detail); err != nil {
				return "", err
			}
			text = buf.String()
		}
		if text == "" || text == "null" {
			return kind, nil
		}
		return kind + ": " + text, nil
	}
	return "", nil
}
