package jsonconv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errEmptyPath  = errors.New("empty path")
	errNoMatches  = errors.New("no elements matched wildcard")
	errBadSegment = errors.New("malformed path segment")
)

// Extract walks a decoded JSON document (maps, slices and scalars as produced
// by Unmarshal into any) along a jq-like path:
//
//	.name          object key
//	.items[0]      array index
//	.items[*].id   every element, results flattened
//	[*].id         every row of a top level array
//
// A leading dot is optional.
func Extract(doc any, path string) (any, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), ".")
	if path == "" {
		return nil, errEmptyPath
	}
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	return walk(doc, segments)
}

type segment struct {
	key   string // empty for a bare index on the current value
	index string // "", "*" or a decimal index
	array bool
}

func splitPath(path string) ([]segment, error) {
	var segments []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		key, rest, isArray := strings.Cut(part, "[")
		if !isArray {
			segments = append(segments, segment{key: part})
			continue
		}
		index, ok := strings.CutSuffix(rest, "]")
		if !ok || strings.ContainsAny(index, "[]") {
			return nil, fmt.Errorf("%w: %s", errBadSegment, part)
		}
		segments = append(segments, segment{key: key, index: index, array: true})
	}
	return segments, nil
}

func walk(current any, segments []segment) (any, error) {
	for i, seg := range segments {
		if seg.key != "" {
			obj, ok := current.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("expected object at %q", seg.key)
			}
			value, exists := obj[seg.key]
			if !exists {
				return nil, fmt.Errorf("key not found: %s", seg.key)
			}
			current = value
		}
		if !seg.array {
			continue
		}

		arr, ok := current.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array at %q", seg.key)
		}
		if seg.index == "*" || seg.index == "" {
			return wildcard(arr, segments[i+1:])
		}
		n, err := strconv.Atoi(seg.index)
		if err != nil || n < 0 || n >= len(arr) {
			return nil, fmt.Errorf("invalid index %s at %q", seg.index, seg.key)
		}
		current = arr[n]
	}
	return current, nil
}

// wildcard applies the remaining segments to every element and flattens
// array results. Elements the remainder does not match are skipped.
func wildcard(arr []any, rest []segment) (any, error) {
	if len(rest) == 0 {
		return arr, nil
	}

	results := make([]any, 0, len(arr))
	for _, item := range arr {
		value, err := walk(item, rest)
		if err != nil {
			continue
		}
		if values, ok := value.([]any); ok {
			results = append(results, values...)
		} else {
			results = append(results, value)
		}
	}
	if len(results) == 0 {
		return nil, errNoMatches
	}
	return results, nil
}
