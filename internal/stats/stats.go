// Package stats computes the summaries shown by the report command: totals,
// rankings, searches, trends and keyword counts over one run's records.
package stats

import (
	"cmp"
	"hftrending/internal/scrapers/huggingface"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// Summary holds the headline numbers of a run. Means only consider records that
// have the value, they are nil when none do.
type Summary struct {
	Papers          int
	TotalUpvotes    int64
	MeanUpvotes     *float64
	MeanGithubStars *float64

	Models         int
	TotalDownloads int64
	MeanDownloads  *float64
	MeanLikes      *float64
}

type accumulator struct {
	total int64
	count int
}

func (a *accumulator) add(value *int64) {
	if value == nil {
		return
	}
	a.total += *value
	a.count++
}

func (a accumulator) mean() *float64 {
	if a.count == 0 {
		return nil
	}
	mean := float64(a.total) / float64(a.count)
	return &mean
}

func Overview(papers []huggingface.PaperRecord, models []huggingface.ModelRecord) Summary {
	var upvotes, stars, downloads, likes accumulator
	for _, p := range papers {
		upvotes.add(p.Upvotes)
		stars.add(p.GithubStars)
	}
	for _, m := range models {
		downloads.add(m.Downloads)
		likes.add(m.Likes)
	}
	return Summary{
		Papers:          len(papers),
		TotalUpvotes:    upvotes.total,
		MeanUpvotes:     upvotes.mean(),
		MeanGithubStars: stars.mean(),

		Models:         len(models),
		TotalDownloads: downloads.total,
		MeanDownloads:  downloads.mean(),
		MeanLikes:      likes.mean(),
	}
}

// compareDescending orders larger values first and absent values last.
func compareDescending(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*b, *a)
}

func top[T any](records []T, n int, key func(T) *int64) []T {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return compareDescending(key(a), key(b))
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TopPapersByUpvotes returns the n most upvoted papers, a negative n returns all
// of them. Ties keep page order.
func TopPapersByUpvotes(papers []huggingface.PaperRecord, n int) []huggingface.PaperRecord {
	return top(papers, n, func(p huggingface.PaperRecord) *int64 { return p.Upvotes })
}

// TopModelsByDownloads is TopPapersByUpvotes for model downloads.
func TopModelsByDownloads(models []huggingface.ModelRecord, n int) []huggingface.ModelRecord {
	return top(models, n, func(m huggingface.ModelRecord) *int64 { return m.Downloads })
}

func containsFold(value, query string) bool {
	return strings.Contains(strings.ToLower(value), query)
}

// SearchPapers returns the papers whose title, abstract or url contains query,
// ignoring case. An empty query matches everything.
func SearchPapers(papers []huggingface.PaperRecord, query string) []huggingface.PaperRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []huggingface.PaperRecord
	for _, p := range papers {
		if containsFold(p.Title, query) ||
			containsFold(p.Abstract, query) ||
			containsFold(p.Url, query) {
			out = append(out, p)
		}
	}
	return out
}

// SearchModels returns the models whose id or task contains query, ignoring case.
func SearchModels(models []huggingface.ModelRecord, query string) []huggingface.ModelRecord {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []huggingface.ModelRecord
	for _, m := range models {
		if containsFold(m.ModelID, query) ||
			(m.Task != nil && containsFold(*m.Task, query)) {
			out = append(out, m)
		}
	}
	return out
}

type ModelMatch struct {
	Model      huggingface.ModelRecord
	Similarity float64
}

// FuzzySearchModels ranks models by the Jaro-Winkler similarity of query to their
// id. Ids are compared whole and without their owner ("org/name" and "name"), the
// better of the two counts. Matches below threshold are left out.
func FuzzySearchModels(models []huggingface.ModelRecord, query string, threshold float64) []ModelMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []ModelMatch
	for _, m := range models {
		id := strings.ToLower(m.ModelID)
		similarity := matchr.JaroWinkler(query, id, false)
		if _, name, ok := strings.Cut(id, "/"); ok {
			similarity = max(similarity, matchr.JaroWinkler(query, name, false))
		}
		if similarity >= threshold {
			matches = append(matches, ModelMatch{Model: m, Similarity: similarity})
		}
	}
	slices.SortStableFunc(matches, func(a, b ModelMatch) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	return matches
}
