package treeio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"cminus/internal/ast"
)

// Format selects the encoding of a tree file.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatMsgPack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgPack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgPack, nil
	default:
		return 0, fmt.Errorf("invalid tree format: %q (expected: json|msgpack)", s)
	}
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".mp", ".msgpack":
		return FormatMsgPack, nil
	default:
		return 0, fmt.Errorf("%s: unknown tree file extension (expected .json or .mp)", path)
	}
}

// Decode reads one tree from r.
func Decode(r io.Reader, format Format) (*ast.File, error) {
	var wire File
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decode json tree: %w", err)
		}
	case FormatMsgPack:
		dec := msgpack.NewDecoder(r)
		dec.DisallowUnknownFields(true)
		if err := dec.Decode(&wire); err != nil {
			return nil, fmt.Errorf("decode msgpack tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("decode tree: unsupported format %s", format)
	}
	return FromWire(&wire)
}

// Unmarshal decodes a tree held in memory.
func Unmarshal(data []byte, format Format) (*ast.File, error) {
	return Decode(bytes.NewReader(data), format)
}

// Encode writes file to w.
func Encode(w io.Writer, file *ast.File, format Format) error {
	wire := ToWire(file)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(wire)
	case FormatMsgPack:
		return msgpack.NewEncoder(w).Encode(wire)
	default:
		return fmt.Errorf("encode tree: unsupported format %s", format)
	}
}

// Marshal encodes file into a byte slice.
func Marshal(file *ast.File, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, file, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
