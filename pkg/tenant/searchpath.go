package tenant

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

// ParseSearchPath splits a search_path setting, as returned by
// current_setting('search_path'), into schema names. Unquoted names are
// folded to lower case, quoted names keep their case and embedded quotes.
// Empty entries are dropped.
func ParseSearchPath(s string) []string {
	var res []string
	var cur strings.Builder
	inQuotes, quoted := false, false

	flush := func() {
		name := cur.String()
		if !quoted {
			name = strings.ToLower(strings.TrimSpace(name))
		}
		if name != "" {
			res = append(res, name)
		}
		cur.Reset()
		quoted = false
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuotes && ch == '"':
			if i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuotes = false
		case inQuotes:
			cur.WriteByte(ch)
		case ch == '"':
			inQuotes, quoted = true, true
		case ch == ',':
			flush()
		case ch == ' ' || ch == '\t':
			if !quoted && cur.Len() > 0 {
				cur.WriteByte(ch)
			}
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return res
}

// FormatSearchPath renders schema names as a search_path value with every
// name quoted. A nil or empty path renders as an empty string.
func FormatSearchPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, v := range path {
		parts = append(parts, pgx.Identifier{v}.Sanitize())
	}
	return strings.Join(parts, ", ")
}
