package endpoint

import "strings"

func seekClosingBrace(s string, i int) int {
	for ; i < len(s); i++ {
		if s[i] == '}' {
			return i
		}
	}

	return -1
}

// validName reports whether s can be a placeholder name. Anything else
// between braces (spaces, slashes, nested braces) is kept as literal text.
func validName(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' && c != '-' {
			return false
		}
	}

	return true
}

// Expand replaces every {name} in s according to the mapping function.
// The mapping returns a boolean telling whether the name is known: an
// unknown placeholder is left in the string as is.
func Expand(s string, mapping func(string) (string, bool)) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '{' {
			sb.WriteByte(s[i])
			continue
		}

		j := seekClosingBrace(s, i+1)
		if j < 0 {
			sb.WriteString(s[i:])
			break
		}

		name := s[i+1 : j]
		if !validName(name) {
			sb.WriteByte(s[i])
			continue
		}

		if val, ok := mapping(name); ok {
			sb.WriteString(val)
		} else {
			sb.WriteString(s[i : j+1])
		}

		i = j
	}

	return sb.String()
}

// Placeholders returns the names referenced by the template, in order of
// appearance and without duplicates.
func Placeholders(template string) []string {
	var names []string

	seen := make(map[string]struct{})

	Expand(template, func(name string) (string, bool) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}

		return "", false
	})

	return names
}

// Resolve joins baseURL and the expanded template. Parameters that the
// template does not reference are ignored; placeholders without a
// parameter stay verbatim in the result.
func Resolve(baseURL string, template string, params map[string]string) string {
	path := Expand(template, func(name string) (string, bool) {
		v, ok := params[name]
		return v, ok
	})

	return strings.TrimSuffix(baseURL, "/") + path
}
