package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsonstrip/internal/models"
)

const (
	// DefaultIndent is the indentation width used when none is configured
	DefaultIndent = 2
	// MaxIndent is the widest indentation accepted
	MaxIndent = 10
	// Stdout is the file path that selects standard output
	Stdout = "-"
)

// Formatter serializes JSON value trees to text
type Formatter struct {
	indent string
}

// NewFormatter creates a Formatter indenting nested values by width spaces.
// A width of 0 produces compact output. Widths above MaxIndent are clamped.
func NewFormatter(width int) *Formatter {
	if width < 0 {
		width = 0
	}
	if width > MaxIndent {
		width = MaxIndent
	}
	return &Formatter{indent: strings.Repeat(" ", width)}
}

// Format renders v as JSON text without a trailing newline.
// Object members are written in their stored order.
func (f *Formatter) Format(v models.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.write(&buf, v, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Formatter) write(buf *bytes.Buffer, v models.Value, depth int) error {
	switch v.Kind() {
	case models.KindNull:
		buf.WriteString("null")
	case models.KindBool:
		if v.BoolValue() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case models.KindNumber:
		n := v.NumberValue()
		if n == "" {
			return fmt.Errorf("empty number literal")
		}
		buf.WriteString(string(n))
	case models.KindString:
		return writeString(buf, v.StringValue())
	case models.KindArray:
		items := v.Items()
		if len(items) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			f.newline(buf, depth+1)
			if err := f.write(buf, item, depth+1); err != nil {
				return err
			}
		}
		f.newline(buf, depth)
		buf.WriteByte(']')
	case models.KindObject:
		members := v.Members()
		if len(members) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				buf.WriteByte(',')
			}
			f.newline(buf, depth+1)
			if err := writeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if f.indent != "" {
				buf.WriteByte(' ')
			}
			if err := f.write(buf, m.Value, depth+1); err != nil {
				return err
			}
		}
		f.newline(buf, depth)
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown value kind %d", v.Kind())
	}
	return nil
}

func (f *Formatter) newline(buf *bytes.Buffer, depth int) {
	if f.indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(f.indent)
	}
}

// writeString writes s as a quoted JSON string. HTML characters are left as is.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode string: %w", err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// WriteFile stores data at path, creating missing parent directories.
// The path "-" writes to standard output.
func WriteFile(path string, data []byte) error {
	if path == Stdout {
		_, err := fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
