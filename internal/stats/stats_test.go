package stats

import (
	"hftrending/internal/normalize"
	"hftrending/internal/scrapers/huggingface"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var papers = []huggingface.PaperRecord{
	{
		Title:       "Training Language Models to Self-Correct",
		Abstract:    "Self-correction is a desirable capability of language models.",
		Url:         "https://huggingface.co/papers/2409.12917",
		Upvotes:     normalize.Ptr[int64](142),
		Published:   normalize.Ptr("2024-09-19"),
		GithubStars: normalize.Ptr[int64](2_700),
	},
	{
		Title:     "NVLM: Open Frontier-Class Multimodal LLMs",
		Abstract:  "We introduce NVLM, a family of multimodal language models.",
		Url:       "https://huggingface.co/papers/2409.11402",
		Published: normalize.Ptr("2024-09-17"),
	},
	{
		Title:     huggingface.NotAvailable,
		Abstract:  huggingface.NotAvailable,
		Url:       "https://huggingface.co/papers/2408.00001",
		Upvotes:   normalize.Ptr[int64](1_500),
		Published: normalize.Ptr("a while ago"),
	},
	{
		Title:       "Qwen2.5-Coder Technical Report",
		Abstract:    "The Qwen2.5-Coder series of code models.",
		Url:         "https://huggingface.co/papers/2409.12186",
		Upvotes:     normalize.Ptr[int64](142),
		Published:   normalize.Ptr("2024-08-30"),
		GithubStars: normalize.Ptr[int64](300),
	},
}

var models = []huggingface.ModelRecord{
	{
		ModelID:    "meta-llama/Llama-3.1-8B-Instruct",
		Task:       normalize.Ptr("Text Generation"),
		Parameters: normalize.Ptr("8B"),
		Updated:    normalize.Ptr("2024-09-25"),
		Downloads:  normalize.Ptr[int64](5_310_000),
		Likes:      normalize.Ptr[int64](3_960),
	},
	{
		ModelID:   "Qwen2.5-72B-Instruct",
		Task:      normalize.Ptr("Text Generation"),
		Updated:   normalize.Ptr("2024-08-19"),
		Downloads: normalize.Ptr[int64](812_000),
		Likes:     normalize.Ptr[int64](1_234),
	},
	{
		ModelID:    "black-forest-labs/FLUX.1-dev",
		Task:       normalize.Ptr("Text-to-Image"),
		Parameters: normalize.Ptr("12B"),
		Likes:      normalize.Ptr[int64](12),
	},
	{
		ModelID:    "openai/whisper-large-v3",
		Parameters: normalize.Ptr("8B"),
		Downloads:  normalize.Ptr[int64](812_000),
	},
}

func TestOverview(t *testing.T) {
	summary := Overview(papers, models)

	require.Equal(t, 4, summary.Papers)
	require.Equal(t, int64(142+1_500+142), summary.TotalUpvotes)
	require.InDelta(t, float64(142+1_500+142)/3, *summary.MeanUpvotes, 1e-9)
	require.InDelta(t, 1_500, *summary.MeanGithubStars, 1e-9)

	require.Equal(t, 4, summary.Models)
	require.Equal(t, int64(5_310_000+812_000+812_000), summary.TotalDownloads)
	require.InDelta(t, float64(5_310_000+812_000+812_000)/3, *summary.MeanDownloads, 1e-9)
	require.InDelta(t, float64(3_960+1_234+12)/3, *summary.MeanLikes, 1e-9)
}

func TestOverviewEmpty(t *testing.T) {
	summary := Overview(nil, nil)
	require.Zero(t, summary.Papers)
	require.Nil(t, summary.MeanUpvotes)
	require.Nil(t, summary.MeanDownloads)
}

func TestTopPapersByUpvotes(t *testing.T) {
	ranked := TopPapersByUpvotes(papers, -1)

	var urls []string
	for _, p := range ranked {
		urls = append(urls, p.Url)
	}
	require.Equal(t, []string{
		"https://huggingface.co/papers/2408.00001",
		// ties keep page order
		"https://huggingface.co/papers/2409.12917",
		"https://huggingface.co/papers/2409.12186",
		// no upvotes
		"https://huggingface.co/papers/2409.11402",
	}, urls)

	require.Len(t, TopPapersByUpvotes(papers, 2), 2)
	require.Len(t, TopPapersByUpvotes(papers, 10), 4)
	// the input is left alone
	require.Equal(t, "https://huggingface.co/papers/2409.12917", papers[0].Url)
}

func TestTopModelsByDownloads(t *testing.T) {
	ranked := TopModelsByDownloads(models, 3)

	var ids []string
	for _, m := range ranked {
		ids = append(ids, m.ModelID)
	}
	require.Equal(t, []string{
		"meta-llama/Llama-3.1-8B-Instruct",
		"Qwen2.5-72B-Instruct",
		"openai/whisper-large-v3",
	}, ids)
}

func TestSearch(t *testing.T) {
	found := SearchPapers(papers, "  LANGUAGE models ")
	require.Len(t, found, 2)
	require.Equal(t, "https://huggingface.co/papers/2409.12917", found[0].Url)
	require.Equal(t, "https://huggingface.co/papers/2409.11402", found[1].Url)

	found = SearchPapers(papers, "2408")
	require.Len(t, found, 1)

	require.Len(t, SearchPapers(papers, ""), len(papers))
	require.Empty(t, SearchPapers(papers, "diffusion"))

	foundModels := SearchModels(models, "text-to")
	require.Len(t, foundModels, 1)
	require.Equal(t, "black-forest-labs/FLUX.1-dev", foundModels[0].ModelID)

	foundModels = SearchModels(models, "instruct")
	require.Len(t, foundModels, 2)
}

func TestFuzzySearchModels(t *testing.T) {
	matches := FuzzySearchModels(models, "Qwen2.5-72B-Instruct", 0.99)
	require.Len(t, matches, 1)
	require.Equal(t, "Qwen2.5-72B-Instruct", matches[0].Model.ModelID)
	require.InDelta(t, 1, matches[0].Similarity, 1e-9)

	// the owner is optional
	matches = FuzzySearchModels(models, "flux.1-dev", 0.99)
	require.Len(t, matches, 1)
	require.Equal(t, "black-forest-labs/FLUX.1-dev", matches[0].Model.ModelID)

	matches = FuzzySearchModels(models, "whisper-large-v3", 0)
	require.Len(t, matches, len(models))
	require.Equal(t, "openai/whisper-large-v3", matches[0].Model.ModelID)
	for i := 1; i < len(matches); i++ {
		require.GreaterOrEqual(t, matches[i-1].Similarity, matches[i].Similarity)
	}

	require.Empty(t, FuzzySearchModels(models, "   ", 0))
}

func TestMonthlyTrend(t *testing.T) {
	trend := MonthlyTrend(papers, models)
	expected := []MonthCount{
		{Month: "2024-08", Papers: 1, Models: 1},
		{Month: "2024-09", Papers: 2, Models: 1},
	}
	if diff := cmp.Diff(expected, trend); diff != "" {
		t.Fatalf("unexpected trend (-want +got):\n%s", diff)
	}
}

func TestDistributions(t *testing.T) {
	require.Equal(t, []ValueCount{
		{Value: "Text Generation", Count: 2},
		{Value: "Text-to-Image", Count: 1},
	}, TaskDistribution(models, 10))

	require.Equal(t, []ValueCount{
		{Value: "8B", Count: 2},
	}, ParameterDistribution(models, 1))

	require.Empty(t, TaskDistribution(nil, 10))
}

func TestKeywords(t *testing.T) {
	keywords := Keywords([]string{
		"Self-correction is a desirable capability of language models.",
		"We introduce NVLM, a family of multimodal Language Models.",
		huggingface.NotAvailable,
		"The model's outputs",
	}, 4)

	require.Equal(t, []ValueCount{
		{Value: "language", Count: 2},
		{Value: "models", Count: 2},
		{Value: "capability", Count: 1},
		{Value: "correction", Count: 1},
	}, keywords)
}
