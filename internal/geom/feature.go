package geom

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType is the declared type of a feature attribute field.
type FieldType uint8

const (
	FTInteger FieldType = iota
	FTInteger64
	FTReal
	FTString
	FTIntegerList
	FTInteger64List
	FTRealList
	FTStringList
	FTDate
	FTDateTime
	FTBinary
)

// FieldSubType refines a field type, e.g. an integer that holds a boolean
// or a string that carries embedded JSON.
type FieldSubType uint8

const (
	SubNone FieldSubType = iota
	SubBoolean
	SubFloat32
	SubJSON
)

// FieldDefn describes one attribute field.
type FieldDefn struct {
	Name    string
	Type    FieldType
	SubType FieldSubType
}

// Field is a field definition together with its value state for one
// feature. Value holds int64, float64, string, []int64, []float64,
// []string or time.Time depending on the declared type.
type Field struct {
	Defn  FieldDefn
	Value any
	Set   bool
	Null  bool
}

// AsInt64 returns the field value coerced to an integer.
func (f *Field) AsInt64() int64 {
	switch v := f.Value.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// AsFloat64 returns the field value coerced to a double.
func (f *Field) AsFloat64() float64 {
	switch v := f.Value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		d, _ := strconv.ParseFloat(v, 64)
		return d
	}
	return 0
}

// AsString returns the field value rendered as a decimal string.
func (f *Field) AsString() string {
	switch v := f.Value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// AsTime returns the field value as a timestamp, or the zero time when the
// value is not one.
func (f *Field) AsTime() time.Time {
	if t, ok := f.Value.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// NullID marks a feature without an internal numeric identifier.
const NullID int64 = -1

// Feature is one record of the data model: an identifier, an optional
// geometry, ordered attribute fields and an optional native-data blob
// retained from a previous parse.
type Feature struct {
	ID       int64
	Geometry *Geometry
	Fields   []Field

	NativeData      string
	NativeMediaType string
}

// NewFeature returns a feature with no identifier assigned.
func NewFeature() *Feature {
	return &Feature{ID: NullID}
}

// FieldIndex returns the index of the named field, or -1. The match is
// case-sensitive.
func (f *Feature) FieldIndex(name string) int {
	for i := range f.Fields {
		if f.Fields[i].Defn.Name == name {
			return i
		}
	}
	return -1
}
