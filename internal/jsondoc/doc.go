// Package jsondoc edits JSON documents in place with gjson and sjson. Key
// order and every field that is not written survive a read-modify-write
// cycle untouched.
package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	ErrInvalid   = errors.New("invalid json")
	ErrNotObject = errors.New("top-level value is not an object")
)

// layout matches what package managers write: two-space indentation and
// arrays expanded one element per line.
var layout = &pretty.Options{Indent: "  "}

// Doc is a JSON object held as raw bytes. Reads go through gjson paths,
// writes through sjson.
type Doc struct {
	raw []byte
}

// New returns an empty object.
func New() *Doc {
	return &Doc{raw: []byte("{}")}
}

// Parse validates data, which must hold a single JSON object.
func Parse(data []byte) (*Doc, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing json: %w", ErrInvalid)
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("parsing json: %w", ErrNotObject)
	}
	return &Doc{raw: append([]byte(nil), data...)}, nil
}

// ReadFile reads and parses the JSON object stored at path.
func ReadFile(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// WriteFile writes d to path with two-space indentation and a trailing newline.
func WriteFile(path string, d *Doc) error {
	return os.WriteFile(path, d.Indent(), 0644)
}

// Bytes returns the document as currently held.
func (d *Doc) Bytes() []byte {
	return d.raw
}

// Indent returns the document in the layout WriteFile uses.
func (d *Doc) Indent() []byte {
	out := bytes.TrimRight(pretty.PrettyOptions(d.raw, layout), "\n")
	return append(out, '\n')
}

// Path joins keys into a gjson/sjson path, escaping characters the path
// syntax treats specially, so keys like "@biomejs/biome" or "lint.fix"
// address a single member.
func Path(keys ...string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = escape(k)
	}
	return strings.Join(parts, ".")
}

func escape(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !safePathChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func safePathChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c <= ' ' || c > '~' ||
		c == '_' || c == '-' || c == ':'
}

// Get returns the value at path. An empty path is the whole document.
func (d *Doc) Get(path string) gjson.Result {
	if path == "" {
		return gjson.ParseBytes(d.raw)
	}
	return gjson.GetBytes(d.raw, path)
}

// Has reports whether path exists.
func (d *Doc) Has(path string) bool {
	return d.Get(path).Exists()
}

// String returns the value at path when it is a JSON string.
func (d *Doc) String(path string) (string, bool) {
	v := d.Get(path)
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// Strings returns the string elements of the array at path. Non-string
// elements are skipped. ok is false when path is not an array.
func (d *Doc) Strings(path string) (out []string, ok bool) {
	v := d.Get(path)
	if !v.IsArray() {
		return nil, false
	}
	for _, elem := range v.Array() {
		if elem.Type == gjson.String {
			out = append(out, elem.Str)
		}
	}
	return out, true
}

// Keys returns the member names of the object at path in document order.
func (d *Doc) Keys(path string) []string {
	v := d.Get(path)
	if !v.IsObject() {
		return nil
	}
	var keys []string
	v.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// Set writes value at path, creating missing parent objects. An existing
// member keeps its position; a new one is appended to its parent.
func (d *Doc) Set(path string, value any) error {
	raw, err := marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	out, err := sjson.SetRawBytes(d.raw, path, raw)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	d.raw = out
	return nil
}

// Delete removes path if present.
func (d *Doc) Delete(path string) error {
	if !d.Has(path) {
		return nil
	}
	out, err := sjson.DeleteBytes(d.raw, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	d.raw = out
	return nil
}

// marshal encodes v without HTML escaping so globs such as "<" or "&" stay
// readable in the written file.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
