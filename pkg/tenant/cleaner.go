package tenant

import (
	"regexp"
	"strings"
)

var (
	searchPathRe = regexp.MustCompile(`(?i)^SET\s+search_path\s*(=|TO\s)`)
	setConfigRe  = regexp.MustCompile(
		`(?i)^SELECT\s+pg_catalog\.set_config\(\s*'search_path'`)
	ownerRe     = regexp.MustCompile(`(?i)^ALTER\s.*\sOWNER\s+TO\s`)
	privilegeRe = regexp.MustCompile(
		`(?i)^(GRANT|REVOKE|ALTER\s+DEFAULT\s+PRIVILEGES)\s`)
	txControlRe = regexp.MustCompile(
		`(?i)^(BEGIN|START\s+TRANSACTION|COMMIT|ROLLBACK|END)(\s+(WORK|TRANSACTION))?\s*;`)
	metaCommandRe = regexp.MustCompile(`^\\(connect|restrict|unrestrict)(\s|$)`)
	copyStartRe   = regexp.MustCompile(`(?i)^COPY\s.+\sFROM\s+stdin\s*;`)
	dollarTagRe   = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)?\$`)

	// a literal is a catalog reference when it is cast to regclass or
	// names a sequence for setval, nextval or currval.
	seqFuncRe  = regexp.MustCompile(`(?i)\b(setval|nextval|currval)\(\s*$`)
	regclassRe = regexp.MustCompile(`(?i)^\s*::\s*regclass\b`)
)

type scanMode int

const (
	inCode scanMode = iota
	inLiteral
	inDollar
)

// scanState is the lexical state carried from one line to the next.
type scanState struct {
	mode scanMode

	// tag is the open dollar-quote tag.
	tag string

	// escapes is set for E'...' literals, where backslash escapes a quote.
	escapes bool
}

// cleaner holds the schema specific patterns of one Clean call.
type cleaner struct {
	schema      Name
	qualifierRe *regexp.Regexp
	createRe    *regexp.Regexp
	commentRe   *regexp.Regexp
	headers     []string
}

func newCleaner(schema Name) *cleaner {
	s := regexp.QuoteMeta(schema.String())
	ident := `"` + s + `"`
	if schema.folded() {
		ident = `(?:` + s + `|"` + s + `")`
	}
	return &cleaner{
		schema: schema,
		qualifierRe: regexp.MustCompile(
			`(^|[^A-Za-z0-9_$."])` + ident + `\.`),
		createRe: regexp.MustCompile(
			`(?i)^CREATE\s+SCHEMA\s+(IF\s+NOT\s+EXISTS\s+)?` + ident + `\s*;`),
		commentRe: regexp.MustCompile(
			`(?i)^COMMENT\s+ON\s+SCHEMA\s+` + ident + `\s`),
		headers: []string{
			"Schema: " + schema.String() + ";",
			"Name: " + schema.String() + ";",
		},
	}
}

// Clean rewrites a plain-text pg_dump of schema into a template that can be
// replayed into any other schema inside a caller managed transaction.
//
// It drops search_path settings, ownership changes, grants and revokes,
// the CREATE/COMMENT ON SCHEMA statements of schema, transaction control,
// psql meta-commands and pg_dump comment headers that name schema. It then
// strips schema qualifiers of schema from SQL text and function bodies.
// String literals are data and keep their text, unless they are regclass
// casts or sequence names passed to setval, nextval or currval. Lines inside
// dollar-quoted bodies or multi-line literals are never dropped and COPY
// data rows are never touched.
//
// Lines that match nothing are emitted unchanged, so text without dump
// directives passes through as is. Clean is idempotent.
func Clean(raw string, schema Name) string {
	if raw == "" {
		return ""
	}
	c := newCleaner(schema)

	var res strings.Builder
	res.Grow(len(raw))

	var st scanState
	var inCopy bool
	for _, line := range strings.SplitAfter(raw, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimRight(line, "\r\n")

		if inCopy {
			if body == `\.` {
				inCopy = false
			}
			res.WriteString(line)
			continue
		}

		if st.mode == inCode {
			stmt := strings.TrimSpace(body)
			if c.drop(stmt) {
				continue
			}
			if copyStartRe.MatchString(stmt) {
				inCopy = true
			}
		}

		res.WriteString(c.rewrite(line, &st))
	}
	return res.String()
}

// Qualified reports whether sql still references objects through the
// schema qualifier of schema. Qualifiers inside data literals do not count.
func Qualified(sql string, schema Name) bool {
	c := newCleaner(schema)
	var st scanState
	for _, line := range strings.SplitAfter(sql, "\n") {
		if c.rewrite(line, &st) != line {
			return true
		}
	}
	return false
}

func (c *cleaner) drop(stmt string) bool {
	if stmt == "" {
		return false
	}
	if strings.HasPrefix(stmt, "--") {
		for _, h := range c.headers {
			if strings.Contains(stmt, h) {
				return true
			}
		}
		return false
	}
	switch {
	case searchPathRe.MatchString(stmt),
		setConfigRe.MatchString(stmt),
		ownerRe.MatchString(stmt),
		privilegeRe.MatchString(stmt),
		txControlRe.MatchString(stmt),
		metaCommandRe.MatchString(stmt),
		c.createRe.MatchString(stmt),
		c.commentRe.MatchString(stmt):
		return true
	}
	return false
}

// rewrite strips qualifiers of the schema from one line and advances st.
// Literals that are not catalog references are copied as they are.
func (c *cleaner) rewrite(line string, st *scanState) string {
	var res strings.Builder
	pos := 0
	emit := func(end int, strip bool) {
		seg := line[pos:end]
		if strip {
			seg = c.unqualify(line[:pos], seg)
		}
		res.WriteString(seg)
		pos = end
	}

	for pos < len(line) {
		rest := line[pos:]
		switch st.mode {
		case inDollar:
			i := strings.Index(rest, st.tag)
			if i < 0 {
				emit(len(line), true)
				continue
			}
			emit(pos+i+len(st.tag), true)
			st.mode, st.tag = inCode, ""

		case inLiteral:
			n, closed := literalEnd(rest, st.escapes)
			emit(pos+n, false)
			if closed {
				st.mode = inCode
			}

		default:
			i, tag := nextQuote(rest)
			if i < 0 {
				emit(len(line), true)
				continue
			}
			emit(pos+i, true)
			if tag != "'" {
				emit(pos+len(tag), false)
				st.mode, st.tag = inDollar, tag
				continue
			}

			st.escapes = escapeString(line[:pos])
			n, closed := literalEnd(line[pos+1:], st.escapes)
			end := pos + 1 + n
			if !closed {
				emit(end, false)
				st.mode = inLiteral
				continue
			}
			emit(end, catalogRef(line[:pos], line[end:]))
		}
	}
	return res.String()
}

// unqualify removes schema qualifiers from seg until none is left. A single
// pass is not enough for input like "s.s.t" because matches cannot overlap.
// The last byte of before is the context of the first match.
func (c *cleaner) unqualify(before, seg string) string {
	var prefix string
	if before != "" {
		prefix = before[len(before)-1:]
	}
	s := prefix + seg
	for c.qualifierRe.MatchString(s) {
		s = c.qualifierRe.ReplaceAllString(s, "${1}")
	}
	return s[len(prefix):]
}

// nextQuote returns the offset and opening text of the next string literal
// or dollar quote in code, or -1. Quoted identifiers and line comments are
// skipped.
func nextQuote(code string) (int, string) {
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\'':
			return i, "'"
		case '"':
			j := strings.IndexByte(code[i+1:], '"')
			if j < 0 {
				return -1, ""
			}
			i += j + 1
		case '-':
			if strings.HasPrefix(code[i:], "--") {
				return -1, ""
			}
		case '$':
			if i > 0 && isIdentByte(code[i-1]) {
				continue
			}
			if tag := dollarTagRe.FindString(code[i:]); tag != "" {
				return i, tag
			}
		}
	}
	return -1, ""
}

// literalEnd returns the offset just past the closing quote of a literal
// whose opening quote precedes s. Doubled quotes are part of the text.
func literalEnd(s string, escapes bool) (int, bool) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if escapes {
				i++
			}
		case '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				i++
				continue
			}
			return i + 1, true
		}
	}
	return len(s), false
}

// escapeString reports whether the literal starting after before is an
// E'...' string.
func escapeString(before string) bool {
	n := len(before)
	if n == 0 || (before[n-1] != 'E' && before[n-1] != 'e') {
		return false
	}
	return n == 1 || !isIdentByte(before[n-2])
}

func catalogRef(before, after string) bool {
	return seqFuncRe.MatchString(before) || regclassRe.MatchString(after)
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') ||
		('0' <= b && b <= '9')
}
