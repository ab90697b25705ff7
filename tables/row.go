package tables

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cell is one field value of a row.
type Cell struct {
	Field string
	Value string
}

// Row is one extracted record. Cells are kept in column order.
type Row struct {
	ID    string
	Cells []Cell
}

// Get returns the value of field, or "" if the row has no such cell.
func (r Row) Get(field string) string {
	for _, c := range r.Cells {
		if c.Field == field {
			return c.Value
		}
	}
	return ""
}

// Map returns the row's cells as a map keyed by field.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.Cells))
	for _, c := range r.Cells {
		m[c.Field] = c.Value
	}
	return m
}

func (r Row) blank() bool {
	for _, c := range r.Cells {
		if c.Value != "" {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the row as an object with "id" first and the cells
// after it in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "id", r.ID); err != nil {
		return nil, err
	}
	for _, c := range r.Cells {
		if c.Field == "id" {
			continue
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, c.Field, c.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("encoding row key: %w", err)
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding row value: %w", err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func rowID(sectionID string, index int) string {
	return fmt.Sprintf("%s-%d", sectionID, index)
}
