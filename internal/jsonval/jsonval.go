// Package jsonval decodes a single JSON value into the any representation
// the classifiers consume: map[string]any objects, []any arrays, and
// json.Number numerics. Unlike a plain Unmarshal it walks tokens so it can
// reject duplicate object keys, a malformed-provenance signal callers of
// the tag-trusted policy care about.
package jsonval

import (
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"
)

// DupKeyError reports a duplicated object key at a JSON Pointer path.
type DupKeyError struct{ Path string }

func (e DupKeyError) Error() string { return "jsonval: duplicate key at " + e.Path }

// Decode reads exactly one JSON value from r.
func Decode(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok, "")
}

func valueFromToken(dec *j.Decoder, tok any, path string) (any, error) {
	switch t := tok.(type) {
	case j.Delim:
		switch t {
		case '{':
			return decodeObject(dec, path)
		case '[':
			return decodeArray(dec, path)
		default:
			return nil, fmt.Errorf("jsonval: unexpected delimiter %v", t)
		}
	default:
		// string, bool, json.Number, or nil
		return tok, nil
	}
}

func decodeObject(dec *j.Decoder, path string) (map[string]any, error) {
	out := map[string]any{}
	seen := map[string]struct{}{}
	for dec.More() {
		ktok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		k, ok := ktok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonval: object key is not a string")
		}
		if _, dup := seen[k]; dup {
			return nil, DupKeyError{Path: path + "/" + k}
		}
		seen[k] = struct{}{}
		vtok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := valueFromToken(dec, vtok, path+"/"+k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	// consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeArray(dec *j.Decoder, path string) ([]any, error) {
	out := []any{}
	for i := 0; dec.More(); i++ {
		vtok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := valueFromToken(dec, vtok, path+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	// consume the closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
