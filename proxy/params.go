package proxy

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// Param is a single member of a Params object.
type Param struct {
	Key   string
	Value interface{}
}

// Params is a JSON object decoded with its member order preserved. Values are
// decoded with json.Number so numeric literals keep their text.
//
// A key repeated in the source document keeps the position of its first
// occurrence and the value of its last.
type Params []Param

// UnmarshalJSON decodes a JSON object (or null) into p.
func (p *Params) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "failed reading params")
	}

	if tok == nil {
		*p = nil
		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("expected params object, received %v", tok)
	}

	var out Params
	index := make(map[string]int)

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return errors.Wrap(err, "failed reading params key")
		}

		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("expected params key, received %v", tok)
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(err, "failed decoding params value for '%s'", key)
		}

		if i, seen := index[key]; seen {
			out[i].Value = value
			continue
		}

		index[key] = len(out)
		out = append(out, Param{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "failed closing params object")
	}

	*p = out
	return nil
}

// Lookup returns the value stored for key and whether it was present.
func (p Params) Lookup(key string) (interface{}, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}

	return nil, false
}

// scalarText returns the textual form of string and number values. Any other
// value reports false.
func scalarText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return numberText(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	}

	return "", false
}

// numberText renders n in its shortest decimal form, so 3.0 and 3 both become
// "3".
func numberText(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// anyText renders any decoded JSON value as text.
func anyText(v interface{}) string {
	if s, ok := scalarText(v); ok {
		return s
	}

	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return string(b)
}
