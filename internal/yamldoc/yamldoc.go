// Package yamldoc serializes ordered maps and sequences into block-style
// YAML text.
//
// Output is deterministic: map keys keep insertion order and indentation is
// two spaces per level. Strings are written plain unless they would be read
// back as something else, in which case they are double quoted.
package yamldoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value any
}

// Map is an insertion-ordered mapping. The zero value is ready to use.
type Map struct {
	entries []Entry
	index   map[string]int
}

// Seq is a sequence of values. Items may be scalars, *Map or Seq.
type Seq []any

func NewMap() *Map { return &Map{} }

// Set stores v under key. An existing key keeps its position.
func (m *Map) Set(key string, v any) *Map {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
	return m
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns the pairs in insertion order. The slice must not be
// modified.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// Marshal renders m as a YAML document. Every line, including the last,
// ends with a newline. A nil or empty map renders as "{}\n".
func Marshal(m *Map) string {
	if m.Len() == 0 {
		return "{}\n"
	}
	var b strings.Builder
	writeMap(&b, m, 0)
	return b.String()
}

func writeMap(b *strings.Builder, m *Map, indent int) {
	sp := strings.Repeat("  ", indent)
	for _, e := range m.Entries() {
		key := formatKey(e.Key)
		switch v := e.Value.(type) {
		case *Map:
			switch {
			case v == nil:
				fmt.Fprintf(b, "%s%s: null\n", sp, key)
			case v.Len() == 0:
				fmt.Fprintf(b, "%s%s: {}\n", sp, key)
			default:
				fmt.Fprintf(b, "%s%s:\n", sp, key)
				writeMap(b, v, indent+1)
			}
		case Seq, []string:
			items := toSeq(v)
			if len(items) == 0 {
				fmt.Fprintf(b, "%s%s: []\n", sp, key)
				continue
			}
			fmt.Fprintf(b, "%s%s:\n", sp, key)
			writeSeq(b, items, indent)
		default:
			fmt.Fprintf(b, "%s%s: %s\n", sp, key, formatScalar(v, false))
		}
	}
}

// writeSeq writes items one level below indent. Maps inside a sequence are
// written as a bare dash with the map two levels further in.
func writeSeq(b *strings.Builder, items Seq, indent int) {
	sp := strings.Repeat("  ", indent)
	for _, item := range items {
		switch v := item.(type) {
		case *Map:
			if v.Len() == 0 {
				fmt.Fprintf(b, "%s  - {}\n", sp)
				continue
			}
			fmt.Fprintf(b, "%s  -\n", sp)
			writeMap(b, v, indent+2)
		case Seq, []string:
			nested := toSeq(v)
			if len(nested) == 0 {
				fmt.Fprintf(b, "%s  - []\n", sp)
				continue
			}
			fmt.Fprintf(b, "%s  -\n", sp)
			writeSeq(b, nested, indent+1)
		default:
			fmt.Fprintf(b, "%s  - %s\n", sp, formatScalar(v, true))
		}
	}
}

func toSeq(v any) Seq {
	switch s := v.(type) {
	case Seq:
		return s
	case []string:
		out := make(Seq, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}

func formatScalar(v any, inSeq bool) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case string:
		if inSeq {
			return formatItem(s)
		}
		return formatValue(s)
	case fmt.Stringer:
		return formatValue(s.String())
	default:
		return formatValue(fmt.Sprint(v))
	}
}

var (
	keywordRe = regexp.MustCompile(`(?i)^(true|false|null|yes|no|on|off|~)$`)
	intRe     = regexp.MustCompile(`^[+-]?\d+$`)
	floatRe   = regexp.MustCompile(`^[+-]?\d*\.\d+$`)
)

func formatValue(s string) string {
	if valueNeedsQuotes(s) || !plainRoundTrips(s, asValue) {
		return quote(s)
	}
	return s
}

func formatItem(s string) string {
	if valueNeedsQuotes(s) || strings.ContainsAny(s, ":#[]{}&*@`") || !plainRoundTrips(s, asItem) {
		return quote(s)
	}
	return s
}

func formatKey(s string) string {
	if keyNeedsQuotes(s) || !plainRoundTrips(s, asKey) {
		return quote(s)
	}
	return s
}

func valueNeedsQuotes(s string) bool {
	switch {
	case s == "":
		return true
	case strings.TrimSpace(s) != s:
		return true
	case keywordRe.MatchString(s), intRe.MatchString(s), floatRe.MatchString(s):
		return true
	case strings.ContainsAny(s, "\n\""):
		return true
	case strings.Contains(s, ": "), strings.Contains(s, " #"):
		return true
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "- "):
		return true
	}
	return false
}

func keyNeedsQuotes(s string) bool {
	if s == "" || keywordRe.MatchString(s) {
		return true
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	return strings.ContainsAny(s, " @&*?><!%^`")
}

type position int

const (
	asValue position = iota
	asItem
	asKey
)

// plainRoundTrips reports whether s, written plain at pos inside a
// one-entry document, parses back to the string s. It catches indicator
// characters and implicit types the rules above do not list.
func plainRoundTrips(s string, pos position) bool {
	var doc string
	switch pos {
	case asItem:
		doc = "- " + s
	case asKey:
		doc = s + ": v"
	default:
		doc = "k: " + s
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &root); err != nil {
		return false
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 {
		return false
	}
	n := root.Content[0]
	var scalar *yaml.Node
	switch {
	case pos == asItem && n.Kind == yaml.SequenceNode && len(n.Content) == 1:
		scalar = n.Content[0]
	case pos == asKey && n.Kind == yaml.MappingNode && len(n.Content) == 2:
		scalar = n.Content[0]
	case pos == asValue && n.Kind == yaml.MappingNode && len(n.Content) == 2:
		scalar = n.Content[1]
	default:
		return false
	}
	return scalar.Kind == yaml.ScalarNode &&
		scalar.Style == 0 &&
		scalar.ShortTag() == "!!str" &&
		scalar.Value == s
}

// quote writes s as a YAML double-quoted scalar.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\r':
			b.WriteString(`\r`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
