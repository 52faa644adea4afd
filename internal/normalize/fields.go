package normalize

import "strings"

// doc wraps one decoded record with its detected shape so field access
// is uniform: lookups take the nested path and the flat variant
// resolves it as a single dotted key.
type doc struct {
	m     map[string]any
	shape Shape
}

func newDoc(record map[string]any) doc {
	return doc{m: record, shape: DetectShape(record)}
}

func (d doc) lookup(path string) (any, bool) {
	if d.shape == ShapeFlat {
		if v, ok := d.m[path]; ok && v != nil {
			return v, true
		}
		return nil, false
	}

	var cur any = d.m
	for _, seg := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

func (d doc) str(path string) *string {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func (d doc) strValue(path string) string {
	if p := d.str(path); p != nil {
		return *p
	}
	return ""
}

func (d doc) int64p(path string) *int64 {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	n, ok := asInt64(v)
	if !ok {
		return nil
	}
	return &n
}

func (d doc) float64p(path string) *float64 {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	f, ok := asFloat64(v)
	if !ok {
		return nil
	}
	return &f
}

// boolValue treats an absent flag as false, matching the source data
// where booleans are only serialized when true.
func (d doc) boolValue(path string) bool {
	v, ok := d.lookup(path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// location reads a coordinate pair. A missing or short array yields
// nils, never an error.
func (d doc) location(path string) (*float64, *float64) {
	v, ok := d.lookup(path)
	if !ok {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, nil
	}
	var x, y *float64
	if len(arr) > 0 {
		if f, ok := asFloat64(arr[0]); ok {
			x = &f
		}
	}
	if len(arr) > 1 {
		if f, ok := asFloat64(arr[1]); ok {
			y = &f
		}
	}
	return x, y
}

func (d doc) locationZ(path string) *float64 {
	v, ok := d.lookup(path)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) < 3 {
		return nil
	}
	if f, ok := asFloat64(arr[2]); ok {
		return &f
	}
	return nil
}

// Int64Field reads one numeric field from a raw record, resolving the
// dotted path against either source shape. Bronze keying uses it to
// pull partition ids without normalizing the whole record.
func Int64Field(record map[string]any, path string) (int64, bool) {
	p := newDoc(record).int64p(path)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// StringField reads one string field from a raw record.
func StringField(record map[string]any, path string) (string, bool) {
	p := newDoc(record).str(path)
	if p == nil {
		return "", false
	}
	return *p, true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
