package core

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BulkPayload is a decoded bulk import request body.
type BulkPayload struct {
	Rows []RawRow

	// RawCells lists cells that held a JSON object or array. They are kept as
	// compact JSON text so nothing is silently lost.
	RawCells []CellRef
}

// CellRef points at one cell of a payload; Row is 1-based.
type CellRef struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
}

// DecodeBulkPayload decodes {"data": [...]}.
//
// data may also be a JSON string holding the encoded array, as sent by
// form-based clients. If that inner decode fails the payload is rejected.
// Strings pass through, numbers and booleans keep their literal text and
// null reads as "".
func DecodeBulkPayload(body []byte) (*BulkPayload, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	data := bytes.TrimSpace(envelope.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, fmt.Errorf("%w: data is missing", ErrEmptyInput)
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("%w: data string: %v", ErrMalformedInput, err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}

	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("%w: data must be an array of row objects: %v", ErrMalformedInput, err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("%w: data has no rows", ErrEmptyInput)
	}

	out := &BulkPayload{Rows: make([]RawRow, len(objects))}
	for i, obj := range objects {
		row := make(RawRow, len(obj))
		for col, raw := range obj {
			v, isRaw, err := decodeCell(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q: %v", ErrMalformedInput, i+1, col, err)
			}
			if isRaw {
				out.RawCells = append(out.RawCells, CellRef{Row: i + 1, Column: col})
			}
			row[col] = v
		}
		out.Rows[i] = row
	}
	return out, nil
}

// decodeCell renders one JSON value as cell text. isRaw is true for objects
// and arrays.
func decodeCell(raw json.RawMessage) (v string, isRaw bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, err
		}
		return s, false, nil
	case 'n':
		return "", false, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", false, err
		}
		return buf.String(), true, nil
	default:
		// numbers, true, false: the literal text is the cell value
		return string(raw), false, nil
	}
}
