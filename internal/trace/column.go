package trace

import "fmt"

// ColumnHeader describes one column: its qualified name and byte width.
type ColumnHeader struct {
	Name  string `json:"name" yaml:"name"`
	Width int    `json:"width" yaml:"width"`
}

// Column is a finished column buffer holding Rows*Width bytes.
type Column struct {
	Header ColumnHeader
	Data   []byte
}

// Cell returns the bytes stored at row.
func (c Column) Cell(row int) []byte {
	w := c.Header.Width
	return c.Data[row*w : (row+1)*w]
}

// DefineColumns pairs names with byte widths, rejecting duplicates and
// non-positive widths.
func DefineColumns(names []string, widths []int) ([]ColumnHeader, error) {
	if len(names) != len(widths) {
		return nil, &Error{Code: ErrCodeInvalidLayout, Message: fmt.Sprintf("%d names for %d widths", len(names), len(widths))}
	}
	seen := make(map[string]struct{}, len(names))
	headers := make([]ColumnHeader, len(names))
	for i, name := range names {
		if _, dup := seen[name]; dup {
			return nil, &Error{Code: ErrCodeInvalidLayout, Message: "duplicate column " + name}
		}
		if widths[i] <= 0 || widths[i] > 32 {
			return nil, &Error{Code: ErrCodeInvalidLayout, Message: fmt.Sprintf("column %s has width %d", name, widths[i])}
		}
		seen[name] = struct{}{}
		headers[i] = ColumnHeader{Name: name, Width: widths[i]}
	}
	return headers, nil
}

// MustDefineColumns is DefineColumns for static module layouts.
func MustDefineColumns(names []string, widths []int) []ColumnHeader {
	h, err := DefineColumns(names, widths)
	if err != nil {
		panic(err)
	}
	return h
}

// Layout builds headers from name/width pairs kept side by side in a module's
// column table.
type Layout []ColumnHeader

// Headers validates the layout and returns it as headers.
func (l Layout) Headers() []ColumnHeader {
	names := make([]string, len(l))
	widths := make([]int, len(l))
	for i, h := range l {
		names[i], widths[i] = h.Name, h.Width
	}
	return MustDefineColumns(names, widths)
}

// Trace is the immutable output of a Writer.
type Trace struct {
	Module  string
	Rows    int
	Columns []Column
}

// Column looks up a column by name.
func (t *Trace) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Header.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Headers lists the column headers in declaration order.
func (t *Trace) Headers() []ColumnHeader {
	h := make([]ColumnHeader, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Header
	}
	return h
}
