// Package binding substitutes ${path} placeholders in display text with
// values looked up from a decoded JSON document.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate replaces every ${path} in text with the matching value
// from data. Paths use dots for object fields and either [i] or a bare
// numeric segment for array indices, e.g. ${items[0].name} or
// ${items.0.name}. Placeholders that resolve to nothing are left as-is.
//
// Two built-ins are available unless shadowed by data: ${time} is the
// current clock time and ${date} the current date.
func Interpolate(text string, data any) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if v, ok := resolve(data, path); ok {
			return format(v)
		}
		switch path {
		case "time":
			return time.Now().Format("15:04:05")
		case "date":
			return time.Now().Format("2006-01-02")
		}
		return match
	})
}

func resolve(data any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}
	cur := data
	for _, seg := range splitPath(path) {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			cur = v[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// splitPath turns "items[0].name" into ["items", "0", "name"].
func splitPath(path string) []string {
	var segs []string
	for _, part := range strings.Split(path, ".") {
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					segs = append(segs, part)
				}
				break
			}
			if open > 0 {
				segs = append(segs, part[:open])
			}
			close := strings.IndexByte(part, ']')
			if close < open {
				break
			}
			segs = append(segs, part[open+1:close])
			part = part[close+1:]
		}
	}
	return segs
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; render integers without the
		// trailing ".0".
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
