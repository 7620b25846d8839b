// Package ref parses and resolves references into loaded tables.
//
// A reference names a table and optionally an entry within it:
//
//	price              whole table
//	price:Podish       entry by key
//	item#3             entry by position
//	price:Podish#0     element of a keyed entry that is a list
package ref

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/Fenex/vangers-tool/core/tables"
)

// Ref is a parsed table reference.
type Ref struct {
	Table string `json:"table"`
	Key   string `json:"key,omitempty"`
	Index int    `json:"index"` // -1 when absent
}

// HasIndex reports whether the reference carries a "#n" part.
func (r *Ref) HasIndex() bool {
	return r.Index >= 0
}

func (r *Ref) String() string {
	var b strings.Builder
	b.WriteString(r.Table)
	if r.Key != "" {
		b.WriteString(":")
		b.WriteString(r.Key)
	}
	if r.HasIndex() {
		b.WriteString("#")
		b.WriteString(strconv.Itoa(r.Index))
	}
	return b.String()
}

// refGrammar is the participle grammar for table references.
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Table string  `@Ident`
	Key   *string `( ":" @(Ident | Int) )?`
	Index *int    `( "#" @Int )?`
}

var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[:#]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a reference string.
func Parse(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid reference %q: %w", s, err)
	}

	r := &Ref{Table: parsed.Table, Index: -1}
	if parsed.Key != nil {
		r.Key = *parsed.Key
	}
	if parsed.Index != nil {
		r.Index = *parsed.Index
	}
	return r, nil
}

// Tables is what a reference resolves against. *catalog.Catalog satisfies it.
type Tables interface {
	Names() []string
	Table(name string) (tables.Table, bool)
}

// NotFoundError reports an unknown table, key or position.
type NotFoundError struct {
	What        string // "table", "key" or "index"
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("unknown %s %q", e.What, e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Resolve returns the value a reference selects: the table's records, one
// entry, or one element of a list entry.
func Resolve(ts Tables, r *Ref) (any, error) {
	t, ok := ts.Table(r.Table)
	if !ok {
		return nil, &NotFoundError{What: "table", Name: r.Table, Suggestions: Suggest(r.Table, ts.Names())}
	}

	if r.Key == "" {
		if !r.HasIndex() {
			return t.Records(), nil
		}
		v, ok := t.At(r.Index)
		if !ok {
			return nil, &NotFoundError{What: "index", Name: strconv.Itoa(r.Index)}
		}
		return v, nil
	}

	v, ok := t.Lookup(r.Key)
	if !ok {
		return nil, &NotFoundError{What: "key", Name: r.Key, Suggestions: Suggest(r.Key, t.Keys())}
	}
	if !r.HasIndex() {
		return v, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("%s:%s is not a list", r.Table, r.Key)
	}
	if r.Index >= rv.Len() {
		return nil, &NotFoundError{What: "index", Name: strconv.Itoa(r.Index)}
	}
	return rv.Index(r.Index).Interface(), nil
}

// maxSuggestions caps the names Suggest returns.
const maxSuggestions = 3

// Suggest returns up to three candidates close to name, nearest first.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	seen := make(map[string]bool)
	lower := strings.ToLower(name)
	for _, cand := range candidates {
		if seen[cand] || cand == name {
			continue
		}
		seen[cand] = true
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(cand))
		if dist > distanceLimit(len(cand)) {
			continue
		}
		hits = append(hits, scored{cand, dist})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for _, h := range hits {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, h.name)
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
