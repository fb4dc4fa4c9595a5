package huggingface

import (
	"context"
	"fmt"
	"hftrending/internal/normalize"
	"hftrending/pkg/htmlutil"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	report_papers_fetch_listing = "papers.fetch-listing"
	report_papers_fetch_details = "papers.fetch-details"
	report_papers_cards         = "papers.cards"
	report_papers_dropped       = "papers.dropped"
)

// these follow the markup of huggingface.co/papers/trending
const (
	paperLinkSelector    = "a[href^='/papers/']"
	paperUpvotesSelector = ".font-semibold.text-orange-500"
)

var (
	paperGithubHref = regexp.MustCompile(`github\.com`)
	paperArxivHref  = regexp.MustCompile(`arxiv\.org`)
	paperStarsLabel = regexp.MustCompile(`\d`)
)

var papersExtracted, _ = meter.Int64Counter("papers_extracted")
var detailFetches, _ = meter.Int64Counter("detail_fetches")
var detailFailures, _ = meter.Int64Counter("detail_failures")

// ParseTrendingCards extracts the cards of the trending papers listing keyed by
// paper url. The same paper can show up in more than one card (different sections
// of the page), those cards are merged: each card fills in whatever it provides, so
// for every field the last card that has a value for it wins.
func (e Extractor) ParseTrendingCards(ctx context.Context, page string) (*CardSet, error) {
	ctx, span := tracer.Start(ctx, "ParseTrendingCards")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse trending papers listing: %w", err)
	}

	cards := newCardSet()
	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		card, ok := e.parsePaperCard(article)
		if ok {
			cards.put(card)
		}
	})

	e.tel.ReportCount(report_papers_cards, int64(cards.Len()))
	span.SetAttributes(attribute.Int("cards", cards.Len()))
	return cards, nil
}

func (e Extractor) parsePaperCard(article *goquery.Selection) (PaperCard, bool) {
	link := htmlutil.LocateSelector(article, paperLinkSelector)
	if link == nil {
		return PaperCard{}, false
	}
	href := link.AttrOr("href", "")
	paperUrl, err := htmlutil.ResolveHref(e.baseUrl, href)
	if err != nil {
		e.tel.ReportWarning(report_papers_cards, fmt.Errorf("resolve href %q: %w", href, err))
		return PaperCard{}, false
	}

	card := PaperCard{Url: paperUrl}

	upvotes := htmlutil.LocateSelector(article, paperUpvotesSelector)
	if upvotes != nil {
		card.Upvotes = normalize.Number(htmlutil.Text(upvotes))
	}

	published := htmlutil.Locate(article, "span", htmlutil.StringMatches(normalize.PublishedLabel))
	if published != nil {
		date := normalize.PublishedDate(htmlutil.GetText(published.Nodes[0]))
		card.Published = &date
	}

	github := htmlutil.Locate(article, "a", htmlutil.AttrMatches("href", paperGithubHref))
	if github != nil {
		githubHref := strings.TrimSpace(github.AttrOr("href", ""))
		card.Github = &githubHref

		stars := htmlutil.Locate(github, "span", htmlutil.StringMatches(paperStarsLabel))
		if stars != nil {
			card.GithubStars = normalize.Number(htmlutil.Text(stars))
		}
	}

	arxiv := htmlutil.Locate(article, "a", htmlutil.AttrMatches("href", paperArxivHref))
	if arxiv != nil {
		arxivHref := strings.TrimSpace(arxiv.AttrOr("href", ""))
		card.Arxiv = &arxivHref
	}

	return card, true
}

// ParsePaperDetails reads the title (first <h1>) and abstract (first <p>) of a
// paper's page. Either one missing is NotAvailable.
func ParsePaperDetails(page string) (PaperDetails, error) {
	doc, err := parseDocument(page)
	if err != nil {
		return PaperDetails{}, fmt.Errorf("parse paper details: %w", err)
	}

	details := PaperDetails{
		Title:    NotAvailable,
		Abstract: NotAvailable,
	}
	if h1 := htmlutil.LocateSelector(doc.Selection, "h1"); h1 != nil {
		details.Title = htmlutil.Text(h1)
	}
	if p := htmlutil.LocateSelector(doc.Selection, "p"); p != nil {
		details.Abstract = htmlutil.Text(p)
	}
	return details, nil
}

type detailOutcome struct {
	details PaperDetails
	err     error
}

func (c *Client) fetchDetails(ctx context.Context, card PaperCard) (PaperDetails, error) {
	detailFetches.Add(ctx, 1)

	page, err := c.FetchPage(ctx, card.Url)
	if err != nil {
		detailFailures.Add(ctx, 1)
		return PaperDetails{}, err
	}
	return ParsePaperDetails(page)
}

// FetchDetails downloads the detail page of every card at once and zips the
// results back onto the cards in the same order. There is no cap on how many
// requests run at the same time.
//
// With AbortOnDetailFailure the first failure cancels the remaining requests and
// is returned. With DropFailedDetails failed papers are reported and left out.
func (c *Client) FetchDetails(ctx context.Context, cards []PaperCard) ([]PaperRecord, error) {
	ctx, span := tracer.Start(ctx, "FetchDetails", trace.WithAttributes(
		attribute.Int("cards", len(cards)),
		attribute.String("policy", string(c.policy)),
	))
	defer span.End()

	// each goroutine only ever writes its own index
	outcomes := make([]detailOutcome, len(cards))

	switch c.policy {
	case DropFailedDetails:
		var wg sync.WaitGroup
		for i, card := range cards {
			wg.Add(1)
			go func() {
				defer wg.Done()
				details, err := c.fetchDetails(ctx, card)
				outcomes[i] = detailOutcome{details: details, err: err}
			}()
		}
		wg.Wait()
	default:
		group, gctx := errgroup.WithContext(ctx)
		for i, card := range cards {
			group.Go(func() error {
				details, err := c.fetchDetails(gctx, card)
				if err != nil {
					return fmt.Errorf("paper details: %w", err)
				}
				outcomes[i] = detailOutcome{details: details}
				return nil
			})
		}
		err := group.Wait()
		if err != nil {
			c.tel.ReportBroken(report_papers_fetch_details, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "detail batch failed")
			return nil, err
		}
	}

	records := make([]PaperRecord, 0, len(cards))
	for i, card := range cards {
		outcome := outcomes[i]
		if outcome.err != nil {
			c.tel.ReportWarning(report_papers_dropped, outcome.err, card.Url)
			continue
		}
		records = append(records, newPaperRecord(card, outcome.details))
	}
	papersExtracted.Add(ctx, int64(len(records)))
	return records, nil
}

// TrendingPapers runs the papers pipeline: fetch the trending listing, merge its
// cards, then fetch every paper's detail page.
func (c *Client) TrendingPapers(ctx context.Context) ([]PaperRecord, error) {
	ctx, span := tracer.Start(ctx, "TrendingPapers")
	defer span.End()

	page, err := c.FetchPage(ctx, c.endpoint(trendingPapersPath))
	if err != nil {
		c.tel.ReportBroken(report_papers_fetch_listing, err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}

	cards, err := c.extractor.ParseTrendingCards(ctx, page)
	if err != nil {
		return nil, err
	}
	return c.FetchDetails(ctx, cards.Cards())
}
