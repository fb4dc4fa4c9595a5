package stats

import (
	"cmp"
	"hftrending/internal/normalize"
	"hftrending/internal/scrapers/huggingface"
	"slices"
	"time"
)

const monthLayout = "2006-01"

type MonthCount struct {
	// YYYY-MM
	Month  string
	Papers int
	Models int
}

func monthOf(date *string) (string, bool) {
	if date == nil {
		return "", false
	}
	parsed, err := time.Parse(normalize.DateLayout, *date)
	if err != nil {
		return "", false
	}
	return parsed.Format(monthLayout), true
}

// MonthlyTrend counts papers by publication month and models by the month they
// were last updated, oldest month first. Records without a normalized date are
// not counted.
func MonthlyTrend(papers []huggingface.PaperRecord, models []huggingface.ModelRecord) []MonthCount {
	months := map[string]*MonthCount{}
	get := func(month string) *MonthCount {
		count, ok := months[month]
		if !ok {
			count = &MonthCount{Month: month}
			months[month] = count
		}
		return count
	}

	for _, p := range papers {
		if month, ok := monthOf(p.Published); ok {
			get(month).Papers++
		}
	}
	for _, m := range models {
		if month, ok := monthOf(m.Updated); ok {
			get(month).Models++
		}
	}

	out := make([]MonthCount, 0, len(months))
	for _, count := range months {
		out = append(out, *count)
	}
	slices.SortFunc(out, func(a, b MonthCount) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

type ValueCount struct {
	Value string
	Count int
}

// countValues returns the n most frequent values, ties in order of first
// appearance. A negative n returns every value.
func countValues(values []string, n int) []ValueCount {
	index := map[string]int{}
	var counts []ValueCount
	for _, value := range values {
		i, ok := index[value]
		if !ok {
			i = len(counts)
			index[value] = i
			counts = append(counts, ValueCount{Value: value})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b ValueCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

func TaskDistribution(models []huggingface.ModelRecord, n int) []ValueCount {
	var tasks []string
	for _, m := range models {
		if m.Task != nil {
			tasks = append(tasks, *m.Task)
		}
	}
	return countValues(tasks, n)
}

func ParameterDistribution(models []huggingface.ModelRecord, n int) []ValueCount {
	var parameters []string
	for _, m := range models {
		if m.Parameters != nil {
			parameters = append(parameters, *m.Parameters)
		}
	}
	return countValues(parameters, n)
}
