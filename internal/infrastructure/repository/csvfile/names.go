package csvfile

import "strings"

// TeamNames maps source spellings to canonical team names.
type TeamNames map[string]string

func (n TeamNames) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if mapped, ok := n[name]; ok {
		return strings.TrimSpace(mapped)
	}
	return name
}
