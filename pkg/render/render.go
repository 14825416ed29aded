// Package render formats generated languages for the terminal.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/grammar"
	"codeberg.org/n30w/nimi/pkg/memory"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Width(18)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// DictionaryTable writes dict as a table with one row per entry.
func DictionaryTable(w io.Writer, dict memory.Dictionary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Roman", "IPA", "POS", "Gender", "Meaning"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	for _, e := range dict {
		table.Append([]string{
			e.Roman,
			e.IPA,
			e.PartOfSpeech.String(),
			e.Gender.String(),
			e.Meaning,
		})
	}

	table.Render()
}

// GrammarSummary describes the phonology and grammar of cfg together with
// the part of speech counts of dict.
func GrammarSummary(cfg config.Config, dict memory.Dictionary) string {
	ms := cfg.MorphoSyntax

	rows := [][2]string{
		{"Consonants", strings.Join(cfg.Inventory.Consonants, " ")},
		{"Vowels", strings.Join(cfg.Inventory.Vowels, " ")},
		{"Syllables", strings.Join(cfg.Templates, " ")},
		{"Sound changes", rules(cfg)},
		{"Tones", tones(cfg)},
		{"Word order", string(ms.WordOrder)},
		{"Adjectives", adjectives(ms.AdjectiveOrder)},
		{"Case marking", caseMarking(ms.CaseMarking, cfg.Grammar)},
		{"Gender", gender(ms)},
		{"Tenses", tenses(cfg.Grammar)},
		{"Plural", "-" + cfg.Grammar.PluralMarker},
		{"Derivation", morphemes(ms)},
		{"Lexicon", counts(dict)},
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(cfg.Name))

	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+r[1])
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func rules(cfg config.Config) string {
	if len(cfg.Rules) == 0 {
		return "none"
	}

	out := make([]string, len(cfg.Rules))
	for i, r := range cfg.Rules {
		out[i] = r.String()
	}

	return strings.Join(out, "; ")
}

func tones(cfg config.Config) string {
	if !cfg.Tone.Enabled {
		return "none"
	}
	return fmt.Sprintf("%d", cfg.Tone.Count)
}

func adjectives(o grammar.AdjectiveOrder) string {
	if o == grammar.NounAdjective {
		return "after the noun (NA)"
	}
	return "before the noun (AN)"
}

func caseMarking(c grammar.CaseMarking, t grammar.Table) string {
	switch c {
	case grammar.CasePrefix:
		return fmt.Sprintf("prefix, subject %s-, object %s-", t.SubjectMarker, t.ObjectMarker)
	case grammar.CasePostposition:
		return fmt.Sprintf("postposition, subject %s, object %s", t.SubjectMarker, t.ObjectMarker)
	default:
		return fmt.Sprintf("suffix, subject -%s, object -%s", t.SubjectMarker, t.ObjectMarker)
	}
}

func gender(ms grammar.MorphoSyntax) string {
	genders := ms.GrammaticalGender.Genders()
	if len(genders) == 0 {
		return "none"
	}

	names := make([]string, len(genders))
	for i, g := range genders {
		names[i] = g.String() + " " + g.Agreement()
	}

	s := strings.Join(names, ", ")
	if ms.GenderAgreement {
		s += " (adjectives agree)"
	}

	return s
}

func tenses(t grammar.Table) string {
	out := make([]string, len(t.Tenses))
	for i, tense := range t.Tenses {
		out[i] = tense.Name + " -" + tense.Marker
	}
	return strings.Join(out, ", ")
}

func morphemes(ms grammar.MorphoSyntax) string {
	if len(ms.DerivationalMorphemes) == 0 {
		return "none"
	}

	out := make([]string, len(ms.DerivationalMorphemes))
	for i, m := range ms.DerivationalMorphemes {
		out[i] = fmt.Sprintf("%s %s (%s)", m.Type, m.Form, m.Func)
	}

	return strings.Join(out, ", ") + fmt.Sprintf(", %.0f%% irregular", ms.IrregularityRate*100)
}

func counts(dict memory.Dictionary) string {
	c := dict.Counts()

	keys := make([]string, 0, len(c))
	for pos := range c {
		keys = append(keys, string(pos))
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, fmt.Sprintf("%d words", len(dict)))

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d %s", c[memory.PartOfSpeech(k)], k))
	}

	return strings.Join(parts, ", ")
}
