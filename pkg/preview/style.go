package preview

import "strings"

type declaration struct {
	name  string
	value string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for part := range strings.SplitSeq(s, ";") {
		name, value, ok := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		out = append(out, declaration{name: name, value: strings.TrimSpace(value)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.name)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteByte(';')
	}
	return b.String()
}

// setProperty sets or, with an empty value, removes a declaration.
func setProperty(style, name, value string) string {
	decls := parseStyle(style)
	out := decls[:0]
	found := false
	for _, d := range decls {
		if d.name == name {
			if found || value == "" {
				continue
			}
			d.value = value
			found = true
		}
		out = append(out, d)
	}
	if !found && value != "" {
		out = append(out, declaration{name: name, value: value})
	}
	return formatStyle(out)
}
