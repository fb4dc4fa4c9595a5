package commands

import (
	"fmt"
	"hftrending/internal/scrapers/huggingface"
	"hftrending/internal/stats"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	fuzzyThreshold   = 0.85
	distributionSize = 10
	parameterSize    = 15
	keywordCount     = 20
	searchLimit      = 30
)

type reportOptions struct {
	Top    int
	Search string
}

func renderReport(w io.Writer, models []huggingface.ModelRecord, papers []huggingface.PaperRecord, opts reportOptions) {
	renderOverview(w, stats.Overview(papers, models))
	renderPapers(w, fmt.Sprintf("Top %d papers by upvotes", opts.Top), stats.TopPapersByUpvotes(papers, opts.Top))
	renderModels(w, fmt.Sprintf("Top %d models by downloads", opts.Top), stats.TopModelsByDownloads(models, opts.Top))
	renderTrend(w, stats.MonthlyTrend(papers, models))
	renderCounts(w, "Tasks", "Task", stats.TaskDistribution(models, distributionSize))
	renderCounts(w, "Parameters", "Parameters", stats.ParameterDistribution(models, parameterSize))

	abstracts := make([]string, len(papers))
	for i, p := range papers {
		abstracts[i] = p.Abstract
	}
	renderCounts(w, "Abstract keywords", "Keyword", stats.Keywords(abstracts, keywordCount))

	tasks := make([]string, len(models))
	for i, m := range models {
		tasks[i] = "Unknown"
		if m.Task != nil {
			tasks[i] = *m.Task
		}
	}
	renderCounts(w, "Task keywords", "Keyword", stats.Keywords(tasks, keywordCount))

	if opts.Search == "" {
		return
	}
	renderPapers(w, fmt.Sprintf("Papers matching %q", opts.Search), limit(stats.SearchPapers(papers, opts.Search), searchLimit))
	renderModels(w, fmt.Sprintf("Models matching %q", opts.Search), limit(stats.SearchModels(models, opts.Search), searchLimit))
	renderFuzzy(w, fmt.Sprintf("Models similar to %q", opts.Search), limit(stats.FuzzySearchModels(models, opts.Search, fuzzyThreshold), searchLimit))
}

func limit[T any](values []T, n int) []T {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func renderOverview(w io.Writer, summary stats.Summary) {
	t := NewTable(w)
	t.SetTitle("Overview")
	t.AppendRows([]table.Row{
		{"Papers", summary.Papers},
		{"Total upvotes", summary.TotalUpvotes},
		{"Mean upvotes", formatMean(summary.MeanUpvotes)},
		{"Mean GitHub stars", formatMean(summary.MeanGithubStars)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Models", summary.Models},
		{"Total downloads", summary.TotalDownloads},
		{"Mean downloads", formatMean(summary.MeanDownloads)},
		{"Mean likes", formatMean(summary.MeanLikes)},
	})
	t.Render()
}

func renderPapers(w io.Writer, title string, papers []huggingface.PaperRecord) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Title", "Upvotes", "Stars", "Published", "Url"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 60},
	})
	for i, p := range papers {
		t.AppendRow(table.Row{
			i + 1,
			p.Title,
			formatCount(p.Upvotes),
			formatCount(p.GithubStars),
			formatOptional(p.Published),
			p.Url,
		})
	}
	t.Render()
}

func renderModels(w io.Writer, title string, models []huggingface.ModelRecord) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Model", "Task", "Parameters", "Downloads", "Likes", "Updated"})
	for i, m := range models {
		t.AppendRow(table.Row{
			i + 1,
			m.ModelID,
			formatOptional(m.Task),
			formatOptional(m.Parameters),
			formatCount(m.Downloads),
			formatCount(m.Likes),
			formatOptional(m.Updated),
		})
	}
	t.Render()
}

func renderFuzzy(w io.Writer, title string, matches []stats.ModelMatch) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Model", "Similarity", "Downloads"})
	for _, match := range matches {
		t.AppendRow(table.Row{
			match.Model.ModelID,
			fmt.Sprintf("%.3f", match.Similarity),
			formatCount(match.Model.Downloads),
		})
	}
	t.Render()
}

func renderTrend(w io.Writer, trend []stats.MonthCount) {
	t := NewTable(w)
	t.SetTitle("Monthly trend")
	t.AppendHeader(table.Row{"Month", "Papers", "Models"})
	for _, month := range trend {
		t.AppendRow(table.Row{month.Month, month.Papers, month.Models})
	}
	t.Render()
}

func renderCounts(w io.Writer, title, column string, counts []stats.ValueCount) {
	t := NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{column, "Count"})
	for _, count := range counts {
		t.AppendRow(table.Row{count.Value, count.Count})
	}
	t.Render()
}
