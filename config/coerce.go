package config

import (
	"fmt"
	"sort"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Coerce converts raw command-line values into the type of the field's default value.
func Coerce(key string, raw []string) (any, error) {
	field, ok := Default[key]
	if !ok {
		return nil, fmt.Errorf("unknown key %s, did you mean %s?", key, Closest(key))
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", key)
	}

	switch field.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		v, err := cast.ToIntE(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q: %w", raw[0], err)
		}
		return v, nil
	case bool:
		v, err := cast.ToBoolE(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q: %w", raw[0], err)
		}
		return v, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type %T for %s", field.Value, key)
	}
}

// Closest returns the registered key with the smallest edit distance to the given one.
func Closest(key string) string {
	keys := lo.Keys(Default)
	sort.Strings(keys)

	return lo.MinBy(keys, func(a, b string) bool {
		return levenshtein.Distance(key, a) < levenshtein.Distance(key, b)
	})
}
