package topic

import (
	"fmt"
	"strings"
)

// Filter is a validated topic filter, compiled into levels at construction.
type Filter struct {
	value  string
	levels []string
}

// NewFilter validates value and compiles it into a Filter. Each /-separated
// level is a literal, the single-level wildcard "+", or the multi-level
// wildcard "#"/"*", which must be the final level. A level mixing a wildcard
// with literal characters (e.g. "foo+") is invalid.
func NewFilter(value string) (Filter, error) {
	if value == "" {
		return Filter{}, fmt.Errorf("topic filter cannot be empty")
	}
	if len(value) > maxTopicBytes {
		return Filter{}, fmt.Errorf("topic filter cannot exceed %d bytes", maxTopicBytes)
	}

	levels := strings.Split(value, "/")
	for i, level := range levels {
		switch level {
		case "+":
		case "#", "*":
			if i != len(levels)-1 {
				return Filter{}, fmt.Errorf("topic filter %q: multi-level wildcard must be the final level", value)
			}
			// "*" is an alias for "#".
			levels[i] = "#"
		default:
			if strings.ContainsAny(level, "+#*") {
				return Filter{}, fmt.Errorf("topic filter %q: level %q mixes wildcard and literal characters", value, level)
			}
		}
	}

	return Filter{value: value, levels: levels}, nil
}

// Match reports whether name matches the filter.
//
// "+" matches exactly one non-empty level. A terminal "#" matches zero or more
// trailing levels, so "a/#" matches both "a" and "a/b/c". Server-internal
// names (leading '$') never match "+" or "#" in the first level; the '$' level
// must be named literally.
func (f Filter) Match(name Name) bool {
	s := name.value
	pos := 0
	done := false

	for i, fl := range f.levels {
		if fl == "#" {
			if i == 0 && s[0] == '$' {
				return false
			}
			return true
		}
		if done {
			return false
		}

		var tl string
		if j := strings.IndexByte(s[pos:], '/'); j >= 0 {
			tl = s[pos : pos+j]
			pos += j + 1
		} else {
			tl = s[pos:]
			done = true
		}

		if fl == "+" {
			if tl == "" {
				return false
			}
			if i == 0 && tl[0] == '$' {
				return false
			}
			continue
		}
		if fl != tl {
			return false
		}
	}

	return done
}

func (f Filter) String() string {
	return f.value
}
