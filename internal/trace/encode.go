package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic opens every trace file.
const Magic = "ZKTR"

// FormatVersion is the current wire format version.
const FormatVersion = 1

// WriteTo serializes t: magic, version, module name, row count, column
// headers, then each column's bytes in declaration order. Integers are
// big-endian; strings are prefixed with a uint16 length.
func (t *Trace) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	cw.write([]byte(Magic))
	cw.write([]byte{FormatVersion})
	cw.str(t.Module)
	cw.u32(uint32(t.Rows))
	cw.u32(uint32(len(t.Columns)))
	for _, c := range t.Columns {
		cw.str(c.Header.Name)
		cw.write([]byte{byte(c.Header.Width)})
	}
	for _, c := range t.Columns {
		cw.write(c.Data)
	}
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) write(p []byte) {
	if c.err != nil {
		return
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	c.write(b[:])
}

func (c *countingWriter) str(s string) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(s)))
	c.write(b[:])
	c.write([]byte(s))
}

// Read decodes a trace written by WriteTo.
func Read(r io.Reader) (*Trace, error) {
	br := bufio.NewReader(r)
	magic := make([]byte, len(Magic)+1)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(magic[:len(Magic)]) != Magic {
		return nil, errors.New("not a trace file")
	}
	if magic[len(Magic)] != FormatVersion {
		return nil, fmt.Errorf("unsupported trace format version %d", magic[len(Magic)])
	}
	module, err := readString(br)
	if err != nil {
		return nil, fmt.Errorf("read module name: %w", err)
	}
	var counts [8]byte
	if _, err := io.ReadFull(br, counts[:]); err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}
	rows := int(binary.BigEndian.Uint32(counts[:4]))
	ncols := int(binary.BigEndian.Uint32(counts[4:]))

	t := &Trace{Module: module, Rows: rows, Columns: make([]Column, ncols)}
	for i := range t.Columns {
		name, err := readString(br)
		if err != nil {
			return nil, fmt.Errorf("read column %d name: %w", i, err)
		}
		width, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read column %s width: %w", name, err)
		}
		t.Columns[i].Header = ColumnHeader{Name: name, Width: int(width)}
	}
	for i := range t.Columns {
		data := make([]byte, rows*t.Columns[i].Header.Width)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, fmt.Errorf("read column %s data: %w", t.Columns[i].Header.Name, err)
		}
		t.Columns[i].Data = data
	}
	return t, nil
}

func readString(r io.Reader) (string, error) {
	var n [2]byte
	if _, err := io.ReadFull(r, n[:]); err != nil {
		return "", err
	}
	b := make([]byte, binary.BigEndian.Uint16(n[:]))
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
