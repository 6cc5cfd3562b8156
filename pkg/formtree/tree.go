package formtree

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNilTree is returned when a write targets a nil tree.
var ErrNilTree = errors.New("formtree: tree is nil")

// Tree is the in-progress form description. Nested nodes are map[string]any
// or []any; integer keys are stored as decimal strings in maps or as slice
// indices.
type Tree = map[string]any

// Get walks tree along loc. The boolean is false when any segment is absent,
// when a scalar sits where a container is required, or when a slice index is
// not a valid in-range integer.
func Get(tree Tree, loc Locator) (any, bool) {
	if tree == nil || loc.Empty() {
		return nil, false
	}
	var current any = tree
	for _, segment := range loc.segments {
		next, ok := child(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Has reports whether loc resolves to a value (including nil).
func Has(tree Tree, loc Locator) bool {
	_, ok := Get(tree, loc)
	return ok
}

func child(node any, segment string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		value, ok := typed[segment]
		return value, ok
	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= len(typed) {
			return nil, false
		}
		return typed[idx], true
	default:
		return nil, false
	}
}

// Set writes value at loc, creating intermediate maps as needed. Scalars found
// on the way are replaced by maps. A slice grows by one when the index equals
// its length; any larger index turns the slice into a map so unwritten indices
// stay absent. Sibling content is left untouched.
func Set(tree Tree, loc Locator, value any) error {
	if tree == nil {
		return ErrNilTree
	}
	if loc.Empty() {
		return ErrEmptyLocator
	}
	setIn(tree, loc.segments, value)
	return nil
}

// setIn assigns value below node and returns the node that should replace it
// in its parent. Maps are updated in place; slices may be reallocated.
func setIn(node any, segments []string, value any) any {
	segment := segments[0]
	rest := segments[1:]

	if list, ok := node.([]any); ok {
		if idx, err := strconv.Atoi(segment); err == nil && idx >= 0 && idx <= len(list) {
			if idx == len(list) {
				list = append(list, nil)
			}
			if len(rest) == 0 {
				list[idx] = value
			} else {
				list[idx] = setIn(list[idx], rest, value)
			}
			return list
		}
		// Keys past the end stay sparse: the list becomes a map keyed by
		// decimal strings.
		node = listToMap(list)
	}

	m, ok := node.(map[string]any)
	if !ok || m == nil {
		m = make(map[string]any)
	}
	if len(rest) == 0 {
		m[segment] = value
		return m
	}
	m[segment] = setIn(m[segment], rest, value)
	return m
}

func listToMap(list []any) map[string]any {
	out := make(map[string]any, len(list))
	for i, item := range list {
		out[strconv.Itoa(i)] = item
	}
	return out
}

// String returns the value at loc as a string. Numbers and booleans are
// formatted; containers and missing values report false.
func String(tree Tree, loc Locator) (string, bool) {
	value, ok := Get(tree, loc)
	if !ok {
		return "", false
	}
	return Stringify(value)
}

// Stringify converts scalar values to their string form.
func Stringify(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case json.Number:
		return typed.String(), true
	case bool:
		return strconv.FormatBool(typed), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(typed), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Int returns the numeric value at loc as an int.
func Int(tree Tree, loc Locator) (int, bool) {
	value, ok := Get(tree, loc)
	if !ok {
		return 0, false
	}
	return toInt(value)
}

func toInt(value any) (int, bool) {
	switch typed := value.(type) {
	case int:
		return typed, true
	case int8:
		return int(typed), true
	case int16:
		return int(typed), true
	case int32:
		return int(typed), true
	case int64:
		return int(typed), true
	case uint:
		return int(typed), true
	case uint8:
		return int(typed), true
	case uint16:
		return int(typed), true
	case uint32:
		return int(typed), true
	case uint64:
		return int(typed), true
	case float32:
		return int(math.Trunc(float64(typed))), true
	case float64:
		return int(math.Trunc(typed)), true
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return int(n), true
		}
		if f, err := typed.Float64(); err == nil {
			return int(math.Trunc(f)), true
		}
		return 0, false
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Float returns the numeric value at loc as a float64. Fractions are kept.
func Float(tree Tree, loc Locator) (float64, bool) {
	value, ok := Get(tree, loc)
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case float32:
		return float64(typed), true
	case float64:
		return typed, true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	}
	n, ok := toInt(value)
	return float64(n), ok
}

// IsEmpty reports whether value counts as unset: nil, "", "0", false, numeric
// zero, or an empty map/slice.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == "" || typed == "0"
	case bool:
		return !typed
	case map[string]any:
		return len(typed) == 0
	case []any:
		return len(typed) == 0
	case float32:
		return typed == 0
	case float64:
		return typed == 0
	case json.Number:
		f, err := typed.Float64()
		return err == nil && f == 0
	}
	if n, ok := toInt(value); ok {
		return n == 0
	}
	return false
}

// Clone returns a deep copy of tree. Only map[string]any and []any nodes are
// copied; other values are shared.
func Clone(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	return cloneValue(tree).(map[string]any)
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
