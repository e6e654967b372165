package jtree

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// JSON serializes the tree in compact form.
func (v *Value) JSON() []byte {
	return v.appendJSON(nil, "", 0)
}

// Pretty serializes the tree with two-space indentation.
func (v *Value) Pretty() []byte {
	return v.appendJSON(nil, "  ", 0)
}

// String returns the compact serialized form.
func (v *Value) String() string {
	return string(v.JSON())
}

func (v *Value) appendJSON(dst []byte, indent string, level int) []byte {
	if v == nil {
		return append(dst, "null"...)
	}
	switch v.Kind {
	case Null:
		return append(dst, "null"...)
	case Bool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case Int:
		if v.Raw != "" {
			return append(dst, v.Raw...)
		}
		return strconv.AppendInt(dst, v.Int, 10)
	case Double:
		if v.Raw != "" {
			return append(dst, v.Raw...)
		}
		return strconv.AppendFloat(dst, v.Num, 'g', -1, 64)
	case String:
		return appendString(dst, v.Str)
	case Array:
		if len(v.Items) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, indent, level+1)
			dst = item.appendJSON(dst, indent, level+1)
		}
		dst = appendNewline(dst, indent, level)
		return append(dst, ']')
	case Object:
		if len(v.Members) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, m := range v.Members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendNewline(dst, indent, level+1)
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			if indent != "" {
				dst = append(dst, ' ')
			}
			dst = m.Value.appendJSON(dst, indent, level+1)
		}
		dst = appendNewline(dst, indent, level)
		return append(dst, '}')
	}
	return dst
}

func appendNewline(dst []byte, indent string, level int) []byte {
	if indent == "" {
		return dst
	}
	dst = append(dst, '\n')
	for i := 0; i < level; i++ {
		dst = append(dst, indent...)
	}
	return dst
}

func appendString(dst []byte, s string) []byte {
	quoted, err := json.Marshal(s)
	if err != nil {
		// Marshal of a string only fails on invalid UTF-8 sequences,
		// which goccy replaces rather than rejecting.
		return append(dst, '"', '"')
	}
	return append(dst, quoted...)
}
