package phonology

// Segments splits word into phonemes, preferring the longest inventory
// symbol at each grapheme boundary and falling back to a single grapheme.
func Segments(word string, inventories ...[]string) []string {
	var symbols []string
	for _, inv := range inventories {
		symbols = append(symbols, inv...)
	}
	symbols = longestFirst(symbols)

	b := graphemeBoundaries(word)
	out := make([]string, 0, len(b.offsets))

	pos := 0
	for pos < len(word) {
		end := b.next(pos)

		for _, s := range symbols {
			if len(s) > len(word)-pos || word[pos:pos+len(s)] != s {
				continue
			}
			if b.has(pos + len(s)) {
				end = pos + len(s)
				break
			}
		}

		out = append(out, word[pos:end])
		pos = end
	}

	return out
}
