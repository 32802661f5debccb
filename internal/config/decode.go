package config

import (
	"fmt"
	"strings"
	"time"
)

// decoder copies typed values out of a nested settings map, collecting
// type errors instead of stopping at the first.
type decoder struct {
	data map[string]any
	errs []error
}

func (d *decoder) lookup(path string) (any, bool) {
	parts := strings.Split(path, ".")
	current := d.data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	v, ok := current[parts[len(parts)-1]]
	return v, ok
}

func (d *decoder) mismatch(path, expected string, v any) {
	d.errs = append(d.errs, &TypeError{Path: path, Expected: expected, Actual: fmt.Sprintf("%T", v)})
}

func (d *decoder) int(path string, dst *int) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		*dst = int(n)
	case float64:
		if n != float64(int(n)) {
			d.mismatch(path, "integer", v)
			return
		}
		*dst = int(n)
	default:
		d.mismatch(path, "integer", v)
	}
}

func (d *decoder) string(path string, dst *string) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch t := v.(type) {
	case string:
		*dst = t
	case bool, int, int64, float64:
		// Environment values arrive pre-parsed; keep their text.
		*dst = fmt.Sprint(t)
	default:
		d.mismatch(path, "string", v)
	}
}

// duration accepts Go duration strings ("2s") or a whole number of seconds.
func (d *decoder) duration(path string, dst *time.Duration) {
	v, ok := d.lookup(path)
	if !ok {
		return
	}
	switch t := v.(type) {
	case time.Duration:
		*dst = t
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			d.mismatch(path, "duration", v)
			return
		}
		*dst = parsed
	case int:
		*dst = time.Duration(t) * time.Second
	case int64:
		*dst = time.Duration(t) * time.Second
	default:
		d.mismatch(path, "duration", v)
	}
}
