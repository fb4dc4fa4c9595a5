package htmlutil

import (
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, src string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{in: "  Text Generation \n", expected: "Text Generation"},
		{in: "a\n\n   b\tc", expected: "a b\tc"},
		{in: "zero\u0007 width", expected: "zero width"},
		{in: "", expected: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanText(test.in), test.in)
	}
}

func TestNextText(t *testing.T) {
	doc := parse(t, `<div>
		<svg class="icon"><path d="M0"></path></svg>
		<span>  </span>
		Text Generation
		<span>more</span>
	</div>
	<div><svg class="last"></svg></div>`)

	text, ok := NextText(doc.Find("svg.icon"))
	require.True(t, ok)
	require.Equal(t, "Text Generation", text)

	_, ok = NextText(doc.Find("svg.last"))
	require.False(t, ok)

	_, ok = NextText(doc.Find("svg.missing"))
	require.False(t, ok)
}

func TestLocate(t *testing.T) {
	doc := parse(t, `<article>
		<svg class="w-3 text-gray-400 mr-1"></svg>
		<svg class="w-3 text-gray-400 mr-0.5"></svg>
		<span title="Number of parameters">7B</span>
		<a href="https://github.com/org/repo"><span>stars</span><span>1.2k</span></a>
	</article>`)
	article := doc.Find("article")

	downloads := Locate(article, "svg", ClassMatches(regexp.MustCompile(`w-3 text-gray-400 mr-0.5`)))
	require.NotNil(t, downloads)
	require.Equal(t, "w-3 text-gray-400 mr-0.5", downloads.AttrOr("class", ""))

	params := Locate(article, "span", AttrMatches("title", regexp.MustCompile(`Number of parameters`)))
	require.NotNil(t, params)
	require.Equal(t, "7B", Text(params))

	github := Locate(article, "a", AttrMatches("href", regexp.MustCompile(`github\.com`)))
	require.NotNil(t, github)
	stars := Locate(github, "span", StringMatches(regexp.MustCompile(`\d`)))
	require.NotNil(t, stars)
	require.Equal(t, "1.2k", Text(stars))

	require.Nil(t, Locate(article, "time", HasAttr("datetime")))
	require.Nil(t, Locate(nil, "span"))
	require.Nil(t, LocateSelector(article, ".font-semibold.text-orange-500"))
}

func TestClassMatchesSingleClass(t *testing.T) {
	doc := parse(t, `<svg class="flex  mr-1.5 text-gray-400"></svg>`)
	require.True(t, ClassMatches(regexp.MustCompile(`mr-1.5`))(doc.Find("svg")))
	require.True(t, ClassMatches(regexp.MustCompile(`^flex mr-1.5`))(doc.Find("svg")))
	require.False(t, ClassMatches(regexp.MustCompile(`mr-2`))(doc.Find("svg")))
}

func TestSoleString(t *testing.T) {
	doc := parse(t, `<span id="a">Published on Jan 2, 2024</span>
		<span id="b"><b>Jan 2, 2024</b></span>
		<span id="c">Jan <b>2</b>, 2024</span>`)

	text, ok := SoleString(doc.Find("#a").Nodes[0])
	require.True(t, ok)
	require.Equal(t, "Published on Jan 2, 2024", text)

	text, ok = SoleString(doc.Find("#b").Nodes[0])
	require.True(t, ok)
	require.Equal(t, "Jan 2, 2024", text)

	_, ok = SoleString(doc.Find("#c").Nodes[0])
	require.False(t, ok)
}

func TestResolveHref(t *testing.T) {
	base, err := url.Parse("https://huggingface.co")
	require.NoError(t, err)

	resolved, err := ResolveHref(base, "/papers/2401.00001")
	require.NoError(t, err)
	require.Equal(t, "https://huggingface.co/papers/2401.00001", resolved)

	resolved, err = ResolveHref(base, "https://arxiv.org/abs/2401.00001")
	require.NoError(t, err)
	require.Equal(t, "https://arxiv.org/abs/2401.00001", resolved)
}

func TestLastPathSegment(t *testing.T) {
	require.Equal(t, "Llama-3-8B", LastPathSegment("/meta-llama/Llama-3-8B"))
	require.Equal(t, "gpt2", LastPathSegment("/gpt2/"))
	require.Equal(t, "model", LastPathSegment("https://huggingface.co/org/model?x=1"))
}
