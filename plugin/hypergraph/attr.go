package hypergraph

import "encoding/json"

// AttrKind discriminates the value held by an AttrValue.
type AttrKind int

const (
	AttrString AttrKind = iota
	AttrNumber
	AttrBool
	AttrMap
)

// AttrValue is a small closed variant for node and edge metadata: a string,
// a number, a boolean, or a nested map. It replaces the open-ended dynamic
// maps of earlier prototypes while keeping ingestion flexible.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	b    bool
	m    map[string]AttrValue
}

// String constructs a string attribute.
func String(s string) AttrValue { return AttrValue{kind: AttrString, str: s} }

// Number constructs a numeric attribute.
func Number(n float64) AttrValue { return AttrValue{kind: AttrNumber, num: n} }

// Bool constructs a boolean attribute.
func Bool(b bool) AttrValue { return AttrValue{kind: AttrBool, b: b} }

// Map constructs a nested map attribute.
func Map(m map[string]AttrValue) AttrValue { return AttrValue{kind: AttrMap, m: m} }

// Kind returns the variant discriminator.
func (v AttrValue) Kind() AttrKind { return v.kind }

// AsString returns the string value and whether the variant holds one.
func (v AttrValue) AsString() (string, bool) { return v.str, v.kind == AttrString }

// AsNumber returns the numeric value and whether the variant holds one.
func (v AttrValue) AsNumber() (float64, bool) { return v.num, v.kind == AttrNumber }

// AsBool returns the boolean value and whether the variant holds one.
func (v AttrValue) AsBool() (bool, bool) { return v.b, v.kind == AttrBool }

// AsMap returns the nested map and whether the variant holds one.
func (v AttrValue) AsMap() (map[string]AttrValue, bool) { return v.m, v.kind == AttrMap }

// Equal reports whether two attribute values hold the same kind and value.
// Nested maps are compared recursively.
func (v AttrValue) Equal(other AttrValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case AttrNumber:
		return v.num == other.num
	case AttrBool:
		return v.b == other.b
	case AttrMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, elem := range v.m {
			o, ok := other.m[k]
			if !ok || !elem.Equal(o) {
				return false
			}
		}
		return true
	default:
		return v.str == other.str
	}
}

// MarshalJSON encodes the variant as its natural JSON value.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrBool:
		return json.Marshal(v.b)
	case AttrMap:
		return json.Marshal(v.m)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON decodes a JSON scalar or object into the matching variant.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case float64:
		*v = Number(t)
	case bool:
		*v = Bool(t)
	case map[string]any:
		m := make(map[string]AttrValue, len(t))
		for k, elem := range t {
			b, err := json.Marshal(elem)
			if err != nil {
				return err
			}
			var av AttrValue
			if err := av.UnmarshalJSON(b); err != nil {
				return err
			}
			m[k] = av
		}
		*v = Map(m)
	case string:
		*v = String(t)
	default:
		b, err := json.Marshal(raw)
		if err != nil {
			return err
		}
		*v = String(string(b))
	}
	return nil
}
