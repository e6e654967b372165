package jtree

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Parse decodes JSON text into a value tree. Object member order is
// preserved and duplicate keys are kept as separate members. Numeric
// literals are retained verbatim so reserialization does not alter them.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	v, err := parseValue(dec, tok)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return v, nil
}

func parseValue(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return NewString(t), nil
	case json.Number:
		return numberValue(t)
	case bool:
		return NewBool(t), nil
	case nil:
		return NewNull(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := parseValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		// Duplicate keys stay as distinct members in input order.
		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		item, err := parseValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, err
	}
	return arr, nil
}

func numberValue(n json.Number) (*Value, error) {
	raw := n.String()
	if !strings.ContainsAny(raw, ".eE") {
		i, err := n.Int64()
		if err == nil {
			return &Value{Kind: Int, Int: i, Raw: raw}, nil
		}
		// Out of int64 range, fall through to double.
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return &Value{Kind: Double, Num: f, Raw: raw}, nil
}
