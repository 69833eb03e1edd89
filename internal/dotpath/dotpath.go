// Package dotpath resolves dot-separated key paths against nested mappings.
package dotpath

import "strings"

// Resolve walks path segment by segment into m and returns whatever the
// last segment lands on. A missing key yields the empty mapping for the
// rest of the walk, and so does descending into a non-mapping value: a
// scalar has no keys, so any further segment resolves to the empty
// default. A path that fully resolves to a scalar returns that scalar.
//
// Resolve("a.b.c") over {"a": {"b": {"c": 5}}} is 5; over {"a": {"b": 1}}
// it is {} because "c" over-descends into the scalar 1.
func Resolve(m map[string]any, path string) any {
	var current any = m
	for _, segment := range strings.Split(path, ".") {
		level, ok := current.(map[string]any)
		if !ok {
			current = map[string]any{}
			continue
		}
		value, ok := level[segment]
		if !ok {
			current = map[string]any{}
			continue
		}
		current = value
	}
	return current
}
