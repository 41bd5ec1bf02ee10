package graph

import (
	"fmt"
	"strings"

	"github.com/matzehuels/colgraph/pkg/errors"
)

// Category tags an edge for color-coding. The declared order is the drawing
// priority: later categories are drawn above earlier ones.
type Category int

const (
	// Neutral is the default category ("grey").
	Neutral Category = iota
	Green
	Blue
	Red
	// Yellow edges are drawn as loops anchored above their start vertex.
	Yellow
)

// NumCategories is the number of declared categories.
const NumCategories = int(Yellow) + 1

// LoopCategory is the category rendered as a loop instead of a straight line.
const LoopCategory = Yellow

var categoryNames = [NumCategories]string{
	Neutral: "grey",
	Green:   "green",
	Blue:    "blue",
	Red:     "red",
	Yellow:  "yellow",
}

// legacyNames maps alternative spellings to canonical category names.
var legacyNames = map[string]string{
	"gray": "grey",
}

// Categories returns every category in drawing priority order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the canonical color name.
func (c Category) String() string {
	if c.Valid() {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool { return c >= Neutral && c <= Yellow }

// IsLoop reports whether edges of this category render as loops.
func (c Category) IsLoop() bool { return c == LoopCategory }

// ParseCategory converts a color name into a Category.
// Matching is case-insensitive, "gray" is accepted for "grey", and the empty
// string yields Neutral.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Neutral, nil
	}
	if canonical, ok := legacyNames[name]; ok {
		name = canonical
	}
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Neutral, errors.New(errors.ErrCodeInvalidInput, "unknown edge color %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
