// Package normalize turns raw StatsBomb records into canonical rows.
// The open data ships in two shapes, one with nested objects and one
// with dot-notation keys, and both must land on identical rows.
package normalize

import "strings"

type Shape int

const (
	ShapeNested Shape = iota
	ShapeFlat
)

func (s Shape) String() string {
	if s == ShapeFlat {
		return "flat"
	}
	return "nested"
}

// DetectShape classifies one decoded record. A single dot-notation key
// marks the flat variant; records without any are treated as nested.
func DetectShape(record map[string]any) Shape {
	for key := range record {
		if strings.ContainsRune(key, '.') {
			return ShapeFlat
		}
	}
	return ShapeNested
}
