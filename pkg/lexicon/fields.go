package lexicon

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// semanticFields are the closed meaning lists a lexicon draws from, in a
// fixed order so generation is reproducible from a seed.
var semanticFields = [...]struct {
	name     string
	meanings []string
}{
	{"nature", []string{
		"sun", "moon", "star", "sky", "cloud", "rain", "wind", "river", "sea", "lake",
		"mountain", "hill", "stone", "sand", "tree", "leaf", "flower", "grass", "fire", "snow",
	}},
	{"animals", []string{
		"dog", "cat", "bird", "fish", "horse", "cow", "pig", "sheep", "wolf", "bear",
		"snake", "frog", "insect", "bee", "mouse", "deer", "fox", "owl", "goat", "whale",
	}},
	{"body", []string{
		"head", "eye", "ear", "nose", "mouth", "tooth", "tongue", "hand", "foot", "leg",
		"arm", "heart", "blood", "bone", "skin", "hair", "belly", "neck", "back", "knee",
	}},
	{"family", []string{
		"mother", "father", "child", "son", "daughter", "brother", "sister", "husband", "wife", "grandmother",
		"grandfather", "uncle", "aunt", "cousin", "friend", "elder", "baby", "ancestor", "clan", "guest",
	}},
	{"food", []string{
		"bread", "water", "meat", "milk", "egg", "salt", "fruit", "rice", "soup", "honey",
		"oil", "bean", "root", "seed", "apple", "nut", "wine", "cheese", "berry", "corn",
	}},
	{"emotions", []string{
		"love", "hate", "fear", "joy", "anger", "sorrow", "hope", "shame", "pride", "calm",
		"desire", "trust", "envy", "grief", "wonder", "longing", "peace", "worry", "courage", "pity",
	}},
	{"actions", []string{
		"go", "come", "eat", "drink", "see", "hear", "speak", "sleep", "walk", "run",
		"give", "take", "make", "know", "think", "sing", "fight", "build", "carry", "swim",
	}},
	{"colors", []string{
		"red", "blue", "green", "yellow", "black", "white", "gray", "brown", "purple", "orange",
		"pink", "gold", "silver", "dark", "bright", "pale", "violet", "crimson", "amber", "azure",
	}},
	{"numbers", []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
		"hundred", "thousand", "many", "few", "all", "none", "half", "first", "last", "pair",
	}},
	{"time", []string{
		"day", "night", "morning", "evening", "year", "month", "week", "hour", "season", "spring",
		"summer", "autumn", "winter", "today", "tomorrow", "yesterday", "now", "past", "future", "moment",
	}},
}

// loanwordSources are foreign words that get borrowed into a language.
var loanwordSources = [...]string{
	"computer", "telephone", "coffee", "radio", "taxi",
	"hotel", "chocolate", "banana", "robot", "piano",
	"camera", "guitar", "tomato", "pizza", "sofa",
}

// Fields returns the names of the built-in semantic fields.
func Fields() []string {
	names := make([]string, len(semanticFields))
	for i, f := range semanticFields {
		names[i] = f.name
	}
	return names
}

// Meanings returns the closed meaning list of a field. A name that is not
// a built-in field stands for itself as the only meaning.
func Meanings(field string) []string {
	key := strings.ToLower(strings.TrimSpace(field))

	for _, f := range semanticFields {
		if f.name == key {
			return slices.Clone(f.meanings)
		}
	}

	if key == "" {
		return nil
	}

	return []string{strings.TrimSpace(field)}
}

// SelectMeanings walks fields cyclically and draws one unused meaning from
// each field per pass, until count meanings are collected. It gives up
// after 2*count passes or a pass that found nothing new.
func SelectMeanings(fields []string, count int, rng *rand.Rand) []string {
	if len(fields) == 0 || count <= 0 {
		return nil
	}

	var total int
	for _, field := range fields {
		total += len(Meanings(field))
	}

	count = min(count, total)

	selected := make([]string, 0, count)
	used := make(map[string]struct{}, count)

	for pass := 0; pass < 2*count && len(selected) < count; pass++ {
		progress := false

		for _, field := range fields {
			if len(selected) == count {
				break
			}

			available := make([]string, 0)
			for _, m := range Meanings(field) {
				if _, ok := used[m]; !ok {
					available = append(available, m)
				}
			}

			if len(available) == 0 {
				continue
			}

			m := available[rng.IntN(len(available))]
			used[m] = struct{}{}
			selected = append(selected, m)
			progress = true
		}

		if !progress {
			break
		}
	}

	return selected
}
