package memory

import (
	"fmt"
	"strings"
)

// Dictionary is the ordered output of one generation pass: roots first,
// then derived entries, then loanwords. A Dictionary is replaced, never
// edited, so it can be shared as a snapshot.
type Dictionary []Entry

// Lookup returns the entry with the romanized form roman.
func (d Dictionary) Lookup(roman string) (Entry, bool) {
	for _, e := range d {
		if e.Roman == roman {
			return e, true
		}
	}
	return Entry{}, false
}

// Filter returns the entries tagged with pos, in dictionary order.
func (d Dictionary) Filter(pos PartOfSpeech) []Entry {
	out := make([]Entry, 0)
	for _, e := range d {
		if e.PartOfSpeech == pos {
			out = append(out, e)
		}
	}
	return out
}

// Counts tallies entries per part of speech.
func (d Dictionary) Counts() map[PartOfSpeech]int {
	counts := make(map[PartOfSpeech]int)
	for _, e := range d {
		counts[e.PartOfSpeech]++
	}
	return counts
}

func (d Dictionary) Copy() Dictionary {
	out := make(Dictionary, len(d))
	copy(out, d)
	return out
}

func (d Dictionary) String() string {
	var sb strings.Builder
	for _, e := range d {
		w := fmt.Sprintf("%s %s (%s): %s\n", e.Roman, e.IPA, e.PartOfSpeech, e.Meaning)
		sb.WriteString(w)
	}
	return sb.String()
}
