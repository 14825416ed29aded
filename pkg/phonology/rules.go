package phonology

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/rivo/uniseg"
)

// ErrMalformedRule is returned by Compile for rules that cannot be turned
// into a rewrite.
var ErrMalformedRule = errors.New("malformed phonological rule")

const (
	ruleArrow    = ">"
	rewriteSite  = "_"
	vowelClass   = "V"
	wordBoundary = "#"
	classOpen    = "["
	classClose   = "]"
)

// Rule is a contextual sound change. Pattern has the form "from>to". Context
// locates the rewrite site with "_": "V_V" rewrites between vowels, "_p"
// before p, "#_" at the start of a word. A context without "_" applies the
// change everywhere.
//
// The serialized field names are "from" and "to" for compatibility with
// existing rule files, where "from" holds the pattern and "to" the context.
type Rule struct {
	Pattern string `toml:"from" yaml:"from" json:"from"`
	Context string `toml:"to" yaml:"to" json:"to"`
}

func (r Rule) String() string {
	if r.Context == "" {
		return r.Pattern
	}
	return r.Pattern + " / " + r.Context
}

// unit matches one position of a pattern: a literal grapheme, a bracket
// class, the vowel class, or a zero-width word boundary.
type unit struct {
	alts     []string
	boundary bool
}

type sequence []unit

// Rewrite is a compiled Rule.
type Rewrite struct {
	from   sequence
	to     string
	before sequence
	after  sequence
}

// Compile parses a rule against the current vowel inventory, which "V" in
// the context expands to.
func Compile(r Rule, vowels []string) (*Rewrite, error) {
	from, to, ok := strings.Cut(r.Pattern, ruleArrow)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedRule, "pattern %q has no %q", r.Pattern, ruleArrow)
	}

	if from == "" {
		return nil, errors.Wrapf(ErrMalformedRule, "pattern %q has an empty source", r.Pattern)
	}

	fromSeq, err := parseSequence(from, nil, false)
	if err != nil {
		return nil, errors.Wrapf(err, "pattern %q", r.Pattern)
	}

	rw := &Rewrite{
		from: fromSeq,
		to:   to,
	}

	if !strings.Contains(r.Context, rewriteSite) {
		return rw, nil
	}

	if strings.Count(r.Context, rewriteSite) > 1 {
		return nil, errors.Wrapf(ErrMalformedRule, "context %q has more than one %q", r.Context, rewriteSite)
	}

	before, after, _ := strings.Cut(r.Context, rewriteSite)

	rw.before, err = parseSequence(before, vowels, true)
	if err != nil {
		return nil, errors.Wrapf(err, "context %q", r.Context)
	}

	rw.after, err = parseSequence(after, vowels, true)
	if err != nil {
		return nil, errors.Wrapf(err, "context %q", r.Context)
	}

	return rw, nil
}

// parseSequence splits s into graphemes and turns each into a unit. In a
// context, "V" expands to the vowels and "#" is a word boundary.
func parseSequence(s string, vowels []string, inContext bool) (sequence, error) {
	var (
		seq   sequence
		class []string
		open  bool
	)

	g := uniseg.NewGraphemes(s)

	for g.Next() {
		c := g.Str()

		switch {
		case c == classOpen:
			if open {
				return nil, errors.Wrap(ErrMalformedRule, "nested bracket class")
			}
			open = true
			class = class[:0]
		case c == classClose:
			if !open {
				return nil, errors.Wrap(ErrMalformedRule, "unbalanced bracket class")
			}
			if len(class) == 0 {
				return nil, errors.Wrap(ErrMalformedRule, "empty bracket class")
			}
			seq = append(seq, unit{alts: slices.Clone(class)})
			open = false
		case open:
			class = append(class, c)
		case inContext && c == vowelClass:
			seq = append(seq, unit{alts: longestFirst(vowels)})
		case inContext && c == wordBoundary:
			seq = append(seq, unit{boundary: true})
		default:
			seq = append(seq, unit{alts: []string{c}})
		}
	}

	if open {
		return nil, errors.Wrap(ErrMalformedRule, "unterminated bracket class")
	}

	return seq, nil
}

func longestFirst(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s != "" {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b string) int {
		return len(b) - len(a)
	})

	return out
}

// boundaries are the byte offsets of grapheme cluster starts in a word,
// plus the end of the word.
type boundaries struct {
	offsets []int
	set     map[int]struct{}
}

func graphemeBoundaries(word string) boundaries {
	b := boundaries{
		offsets: make([]int, 0, len(word)+1),
		set:     make(map[int]struct{}, len(word)+1),
	}

	g := uniseg.NewGraphemes(word)
	for g.Next() {
		from, _ := g.Positions()
		b.offsets = append(b.offsets, from)
		b.set[from] = struct{}{}
	}

	b.offsets = append(b.offsets, len(word))
	b.set[len(word)] = struct{}{}

	return b
}

func (b boundaries) has(pos int) bool {
	_, ok := b.set[pos]
	return ok
}

func (b boundaries) next(pos int) int {
	i, _ := slices.BinarySearch(b.offsets, pos+1)
	return b.offsets[i]
}

// match returns every end offset at which u matches word starting at pos.
func (u unit) match(word string, pos int, b boundaries) []int {
	if u.boundary {
		if pos == 0 || pos == len(word) {
			return []int{pos}
		}
		return nil
	}

	var ends []int

	for _, alt := range u.alts {
		end := pos + len(alt)
		if strings.HasPrefix(word[pos:], alt) && b.has(end) {
			ends = append(ends, end)
		}
	}

	return ends
}

// match returns every end offset at which the sequence matches word
// starting at pos.
func (s sequence) match(word string, pos int, b boundaries) []int {
	if len(s) == 0 {
		return []int{pos}
	}

	var ends []int

	for _, mid := range s[0].match(word, pos, b) {
		for _, end := range s[1:].match(word, mid, b) {
			if !slices.Contains(ends, end) {
				ends = append(ends, end)
			}
		}
	}

	return ends
}

// endsAt reports whether the sequence matches some substring of word that
// ends exactly at pos.
func (s sequence) endsAt(word string, pos int, b boundaries) bool {
	if len(s) == 0 {
		return true
	}

	for _, start := range b.offsets {
		if start > pos {
			break
		}
		if slices.Contains(s.match(word, start, b), pos) {
			return true
		}
	}

	return false
}

// site returns the end of the longest rewrite match at pos whose context
// holds in the unmodified word.
func (r *Rewrite) site(word string, pos int, b boundaries) (int, bool) {
	if !r.before.endsAt(word, pos, b) {
		return 0, false
	}

	ends := r.from.match(word, pos, b)
	slices.Sort(ends)

	for i := len(ends) - 1; i >= 0; i-- {
		end := ends[i]
		if end == pos {
			continue
		}
		if len(r.after.match(word, end, b)) > 0 {
			return end, true
		}
	}

	return 0, false
}

// Apply rewrites every non-overlapping match, scanning left to right.
// Context is checked against the input, never against text already
// rewritten in this pass.
func (r *Rewrite) Apply(word string) string {
	if word == "" {
		return word
	}

	b := graphemeBoundaries(word)

	var sb strings.Builder

	pos := 0
	for pos < len(word) {
		if end, ok := r.site(word, pos, b); ok {
			sb.WriteString(r.to)
			pos = end
			continue
		}

		next := b.next(pos)
		sb.WriteString(word[pos:next])
		pos = next
	}

	return sb.String()
}

// CompileRules compiles rules in order. Malformed rules are logged and
// left out; the rest are returned in declaration order.
func CompileRules(rules []Rule, vowels []string, logger *log.Logger) []*Rewrite {
	compiled := make([]*Rewrite, 0, len(rules))

	for _, rule := range rules {
		rw, err := Compile(rule, vowels)
		if err != nil {
			if logger != nil {
				logger.Warn(
					"skipping malformed phonological rule",
					"from",
					rule.Pattern,
					"to",
					rule.Context,
					"err",
					err,
				)
			}
			continue
		}
		compiled = append(compiled, rw)
	}

	return compiled
}

// ApplyRules compiles and applies rules sequentially to word.
func ApplyRules(
	word string,
	rules []Rule,
	vowels []string,
	logger *log.Logger,
) string {
	return Rewrites(CompileRules(rules, vowels, logger)).Apply(word)
}

// Rewrites is an ordered rule set.
type Rewrites []*Rewrite

// Apply feeds word through every rewrite in order.
func (rs Rewrites) Apply(word string) string {
	for _, r := range rs {
		word = r.Apply(word)
	}
	return word
}
