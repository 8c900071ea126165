package dbf

import (
	"encoding/json"
	"fmt"
)

// Row is a materialized row. It owns its raw bytes and decodes column
// values lazily on first access, caching them per column position. Rows
// outlive the reader iteration that produced them.
type Row struct {
	handle   *File
	Position uint32
	Deleted  bool
	data     []byte
	values   []interface{}
	decoded  []bool
}

// Value returns the decoded value of the column at the given position.
// The first access decodes and caches, later accesses return the cache.
func (row *Row) Value(position int) (interface{}, error) {
	if position < 0 || position >= len(row.handle.columns) {
		return nil, newError("dbf-row-value-1", ErrInvalidPosition)
	}
	if row.decoded[position] {
		return row.values[position], nil
	}
	raw := row.FieldBytes(position)
	if raw == nil {
		return nil, newError("dbf-row-value-2", ErrIncomplete)
	}
	value, err := row.handle.Interpret(raw, row.handle.columns[position])
	if err != nil {
		return nil, newError("dbf-row-value-3", err)
	}
	row.values[position] = value
	row.decoded[position] = true
	return value, nil
}

// ValueByName returns the decoded value of the named column.
// Name comparison honors Config.IgnoreCase.
func (row *Row) ValueByName(name string) (interface{}, error) {
	position := row.handle.ColumnPosByName(name)
	if position < 0 {
		return nil, newError("dbf-row-valuebyname-1", fmt.Errorf("column %q not found", name))
	}
	return row.Value(position)
}

// MustValue returns the decoded value of the column at the given position
// or nil when the value cannot be decoded.
func (row *Row) MustValue(position int) interface{} {
	value, err := row.Value(position)
	if err != nil {
		return nil
	}
	return value
}

// FieldBytes returns the raw bytes of the column at the given position,
// the deletion flag excluded. Returns nil when the row data is shorter
// than the column layout.
func (row *Row) FieldBytes(position int) []byte {
	return fieldBytes(row.handle, row.data, position)
}

// ToMap returns the complete row as a map keyed by column name.
func (row *Row) ToMap() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(row.handle.columns))
	for i, column := range row.handle.columns {
		value, err := row.Value(i)
		if err != nil {
			return out, newError("dbf-row-tomap-1", fmt.Errorf("error on column %s at position %d: %w", column.Name(), i, err))
		}
		out[column.Name()] = value
	}
	return out, nil
}

// ToJSON returns the complete row as a JSON object.
func (row *Row) ToJSON() ([]byte, error) {
	m, err := row.ToMap()
	if err != nil {
		return nil, newError("dbf-row-tojson-1", err)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, newError("dbf-row-tojson-2", err)
	}
	return b, nil
}

// SpanRow is a zero-copy view over the reader's iteration buffer. It is
// valid until the iterator advances, values are parsed on demand and not
// cached. Materialize copies it into an owned Row.
type SpanRow struct {
	handle   *File
	Position uint32
	Deleted  bool
	data     []byte
}

// Value parses and returns the value of the column at the given position.
func (row *SpanRow) Value(position int) (interface{}, error) {
	if position < 0 || position >= len(row.handle.columns) {
		return nil, newError("dbf-spanrow-value-1", ErrInvalidPosition)
	}
	raw := row.FieldBytes(position)
	if raw == nil {
		return nil, newError("dbf-spanrow-value-2", ErrIncomplete)
	}
	return row.handle.Interpret(raw, row.handle.columns[position])
}

// ValueByName parses and returns the value of the named column.
func (row *SpanRow) ValueByName(name string) (interface{}, error) {
	position := row.handle.ColumnPosByName(name)
	if position < 0 {
		return nil, newError("dbf-spanrow-valuebyname-1", fmt.Errorf("column %q not found", name))
	}
	return row.Value(position)
}

// FieldBytes returns the borrowed raw bytes of the column at the given
// position. The slice aliases the iteration buffer.
func (row *SpanRow) FieldBytes(position int) []byte {
	return fieldBytes(row.handle, row.data, position)
}

// ToMap returns the complete row as a map keyed by column name.
func (row *SpanRow) ToMap() (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(row.handle.columns))
	for i, column := range row.handle.columns {
		value, err := row.Value(i)
		if err != nil {
			return out, newError("dbf-spanrow-tomap-1", fmt.Errorf("error on column %s at position %d: %w", column.Name(), i, err))
		}
		out[column.Name()] = value
	}
	return out, nil
}

// Materialize copies the span row into an owned Row.
func (row *SpanRow) Materialize() *Row {
	return row.handle.newRow(row.Position, row.Deleted, cloneBytes(row.data))
}

func fieldBytes(file *File, data []byte, position int) []byte {
	if position < 0 || position >= len(file.columns) {
		return nil
	}
	column := file.columns[position]
	start := int(column.Position)
	end := start + column.DataLength()
	if end > len(data) {
		return nil
	}
	return data[start:end]
}
