package stats

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// words of at least two characters, apostrophes allowed after the first
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_']+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, word := range strings.Fields(`
		a about above after again against all also am an and any are as at be
		because been before being below between both but by can could did do does
		doing down during each few for from further had has have having he her here
		hers herself him himself his how however i if in into is it its itself just
		let me more most my myself no nor not of off on once only or other ought our
		ours ourselves out over own same she should so some such than that the their
		theirs them themselves then there these they this those through to too under
		until up very was we were what when where which while who whom why with would
		you your yours yourself yourselves via using use used based within without
		across among
	`) {
		stopWords[word] = struct{}{}
	}
}

// Keywords counts the words of texts, ignoring case and common English stop
// words, and returns the n most frequent. Ties are ordered alphabetically.
func Keywords(texts []string, n int) []ValueCount {
	counts := map[string]int{}
	for _, text := range texts {
		for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
			word = strings.TrimSuffix(word, "'s")
			word = strings.Trim(word, "'")
			if len([]rune(word)) < 2 {
				continue
			}
			if _, stop := stopWords[word]; stop {
				continue
			}
			counts[word]++
		}
	}

	out := make([]ValueCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, ValueCount{Value: word, Count: count})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Value, b.Value)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
