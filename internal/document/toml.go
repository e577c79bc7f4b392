package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLCodec reads and writes TOML documents. Keys keep their source order;
// within a table plain values are written before sub-tables, as TOML requires.
type TOMLCodec struct{}

// Name implements Codec
func (TOMLCodec) Name() string { return "toml" }

// Decode implements Codec
func (TOMLCodec) Decode(data []byte) (any, error) {
	raw := map[string]any{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	return fromTOMLValue(raw, nil, keyOrder(md)), nil
}

// keyOrder maps a table path to its child names in source order. Elements of
// an array of tables share the path of the array.
func keyOrder(md toml.MetaData) map[string][]string {
	order := map[string][]string{}
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		parent := tomlPathKey(key[:len(key)-1])
		full := tomlPathKey(key)
		if seen[full] {
			continue
		}
		seen[full] = true
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func tomlPathKey(path []string) string {
	return strings.Join(path, "\x00")
}

func fromTOMLValue(value any, path []string, order map[string][]string) any {
	switch v := value.(type) {
	case map[string]any:
		obj := NewObject()
		for _, k := range orderedKeys(v, order[tomlPathKey(path)]) {
			obj.Set(k, fromTOMLValue(v[k], append(path[:len(path):len(path)], k), order))
		}
		return obj
	case []map[string]any:
		arr := NewArray()
		for _, item := range v {
			arr.Items = append(arr.Items, fromTOMLValue(item, path, order))
		}
		return arr
	case []any:
		arr := NewArray()
		for _, item := range v {
			arr.Items = append(arr.Items, fromTOMLValue(item, path, order))
		}
		return arr
	default:
		return v
	}
}

// orderedKeys returns the keys of m in source order. Keys the metadata does
// not know about follow in sorted order.
func orderedKeys(m map[string]any, source []string) []string {
	keys := make([]string, 0, len(m))
	used := make(map[string]bool, len(m))
	for _, k := range source {
		if _, ok := m[k]; ok && !used[k] {
			keys = append(keys, k)
			used[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Encode implements Codec
func (TOMLCodec) Encode(root any) ([]byte, error) {
	obj, ok := root.(*Object)
	if !ok {
		return nil, fmt.Errorf("toml document root must be a table, got %T", root)
	}
	var buf bytes.Buffer
	if err := encodeTOMLTable(&buf, obj, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeTOMLTable(buf *bytes.Buffer, obj *Object, path []string) error {
	var nested []string
	for _, k := range obj.keys {
		switch child := obj.values[k].(type) {
		case *Object:
			nested = append(nested, k)
			continue
		case *Array:
			if _, ok := tableArray(child); ok {
				nested = append(nested, k)
				continue
			}
		}
		line, err := encodeTOMLKeyValue(k, obj.values[k])
		if err != nil {
			return err
		}
		buf.Write(line)
	}

	for _, k := range nested {
		childPath := append(path[:len(path):len(path)], k)
		switch child := obj.values[k].(type) {
		case *Object:
			if !implicitTable(child) {
				writeTOMLHeader(buf, "["+tomlHeader(childPath)+"]")
			}
			if err := encodeTOMLTable(buf, child, childPath); err != nil {
				return err
			}
		case *Array:
			tables, _ := tableArray(child)
			for _, table := range tables {
				writeTOMLHeader(buf, "[["+tomlHeader(childPath)+"]]")
				if err := encodeTOMLTable(buf, table, childPath); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// encodeTOMLKeyValue lets the toml encoder render one key = value line
func encodeTOMLKeyValue(key string, value any) ([]byte, error) {
	plain, err := toTOMLValue(value)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(map[string]any{key: plain}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// implicitTable reports whether obj only holds sub-tables, so its header can
// be left out
func implicitTable(obj *Object) bool {
	if obj.Len() == 0 {
		return false
	}
	for _, k := range obj.keys {
		switch child := obj.values[k].(type) {
		case *Object:
			continue
		case *Array:
			if _, ok := tableArray(child); ok {
				continue
			}
		}
		return false
	}
	return true
}

func writeTOMLHeader(buf *bytes.Buffer, header string) {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString(header)
	buf.WriteByte('\n')
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func tomlHeader(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		if bareKey.MatchString(p) {
			parts[i] = p
		} else {
			parts[i] = strconv.Quote(p)
		}
	}
	return strings.Join(parts, ".")
}

func toTOMLValue(value any) (any, error) {
	switch v := value.(type) {
	case *Object:
		m := make(map[string]any, v.Len())
		for _, k := range v.keys {
			child, err := toTOMLValue(v.values[k])
			if err != nil {
				return nil, err
			}
			m[k] = child
		}
		return m, nil
	case *Array:
		out := make([]any, 0, v.Len())
		for _, item := range v.Items {
			child, err := toTOMLValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		}
		return out, nil
	case json.Number:
		return numberValue(v)
	default:
		return v, nil
	}
}

// tableArray reports whether every item of arr is an Object
func tableArray(arr *Array) ([]*Object, bool) {
	if arr.Len() == 0 {
		return nil, false
	}
	tables := make([]*Object, 0, arr.Len())
	for _, item := range arr.Items {
		obj, ok := item.(*Object)
		if !ok {
			return nil, false
		}
		tables = append(tables, obj)
	}
	return tables, true
}
