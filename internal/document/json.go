package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// JSONCodec reads and writes JSON while preserving object key order
type JSONCodec struct {
	// Indent defaults to two spaces
	Indent string
}

// Name implements Codec
func (JSONCodec) Name() string { return "json" }

// Decode implements Codec. Numbers decode as json.Number so they are written back verbatim.
func (JSONCodec) Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := NewArray()
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Items = append(arr.Items, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	default:
		// string, bool, nil or json.Number
		return t, nil
	}
}

// Encode implements Codec. Output ends with a newline.
func (c JSONCodec) Encode(root any) ([]byte, error) {
	indent := c.Indent
	if indent == "" {
		indent = "  "
	}

	var buf bytes.Buffer
	if err := encodeJSONValue(&buf, root, indent, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeJSONValue(buf *bytes.Buffer, value any, indent string, depth int) error {
	switch v := value.(type) {
	case *Object:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i, key := range v.keys {
			buf.WriteString(strings.Repeat(indent, depth+1))
			if err := encodeJSONScalar(buf, key); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := encodeJSONValue(buf, v.values[key], indent, depth+1); err != nil {
				return err
			}
			if i < len(v.keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte('}')
	case *Array:
		if v.Len() == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range v.Items {
			buf.WriteString(strings.Repeat(indent, depth+1))
			if err := encodeJSONValue(buf, item, indent, depth+1); err != nil {
				return err
			}
			if i < len(v.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteString(strings.Repeat(indent, depth))
		buf.WriteByte(']')
	case json.Number:
		buf.WriteString(v.String())
	default:
		return encodeJSONScalar(buf, v)
	}
	return nil
}

// encodeJSONScalar writes a scalar without HTML escaping, matching what most
// package managers emit.
func encodeJSONScalar(buf *bytes.Buffer, value any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}
