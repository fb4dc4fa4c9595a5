package huggingface

import (
	"context"
	"fmt"
	"hftrending/internal/normalize"
	"hftrending/pkg/htmlutil"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_models_fetch_listing = "models.fetch-listing"
	report_models_parse_updated = "models.parse-updated"
	report_models_cards         = "models.cards"
	report_models_duplicate     = "models.duplicate"
)

// these follow the markup of huggingface.co/models, they will need updating
// whenever the site changes its card layout
const modelCardSelector = "article.overview-card-wrapper"

var (
	modelTaskIcon      = regexp.MustCompile(`mr-1.5`)
	modelParametersTag = regexp.MustCompile(`Number of parameters`)
	modelDownloadsIcon = regexp.MustCompile(`w-3 text-gray-400 mr-0.5`)
	modelLikesIcon     = regexp.MustCompile(`w-3 text-gray-400 mr-1`)
)

var modelsExtracted, _ = meter.Int64Counter("models_extracted")

// ParseModels extracts one record per model, in page order. Every field is
// looked up on its own, a field that can't be found is nil and the rest of the
// card is still used. Records are unique by url, when several cards link to the
// same model only the first one is kept.
func (e Extractor) ParseModels(ctx context.Context, page string) ([]ModelRecord, error) {
	ctx, span := tracer.Start(ctx, "ParseModels")
	defer span.End()

	doc, err := parseDocument(page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse models listing: %w", err)
	}

	var models []ModelRecord
	seen := map[string]bool{}
	doc.Find(modelCardSelector).Each(func(_ int, article *goquery.Selection) {
		record, ok := e.parseModelCard(article)
		if !ok {
			return
		}
		if seen[record.Url] {
			e.tel.ReportDebug(report_models_duplicate, record.Url)
			return
		}
		seen[record.Url] = true
		models = append(models, record)
	})

	e.tel.ReportCount(report_models_cards, int64(len(models)))
	modelsExtracted.Add(ctx, int64(len(models)))
	return models, nil
}

func (e Extractor) parseModelCard(article *goquery.Selection) (ModelRecord, bool) {
	anchor := htmlutil.Locate(article, "a", htmlutil.HasAttr("href"))
	if anchor == nil {
		return ModelRecord{}, false
	}
	href := strings.TrimSpace(anchor.AttrOr("href", ""))

	modelUrl, err := htmlutil.ResolveHref(e.baseUrl, href)
	if err != nil {
		e.tel.ReportWarning(report_models_cards, fmt.Errorf("resolve href %q: %w", href, err))
		return ModelRecord{}, false
	}

	modelId := htmlutil.Text(htmlutil.Locate(anchor, "h4"))
	if modelId == "" {
		modelId = htmlutil.LastPathSegment(href)
	}

	record := ModelRecord{
		ModelID: modelId,
		Url:     modelUrl,
	}

	taskIcon := htmlutil.Locate(article, "svg", htmlutil.ClassMatches(modelTaskIcon))
	if task, ok := htmlutil.NextText(taskIcon); ok {
		record.Task = &task
	}

	parameters := htmlutil.Text(htmlutil.Locate(
		article, "span",
		htmlutil.AttrMatches("title", modelParametersTag),
	))
	if parameters != "" {
		record.Parameters = &parameters
	}

	record.Updated = e.parseUpdated(article, modelUrl)

	downloadsIcon := htmlutil.Locate(article, "svg", htmlutil.ClassMatches(modelDownloadsIcon))
	if text, ok := htmlutil.NextText(downloadsIcon); ok {
		record.Downloads = normalize.Number(text)
	}

	likesIcon := htmlutil.Locate(article, "svg", htmlutil.ClassMatches(modelLikesIcon))
	if text, ok := htmlutil.NextText(likesIcon); ok {
		record.Likes = normalize.Number(text)
	}

	return record, true
}

// parseUpdated reads the first <time> of the card. A timestamp that isn't valid
// ISO 8601 leaves the field empty and is reported, it does not drop the card.
func (e Extractor) parseUpdated(article *goquery.Selection, modelUrl string) *string {
	timeTag := htmlutil.LocateSelector(article, "time")
	if timeTag == nil {
		return nil
	}
	timestamp, ok := timeTag.Attr("datetime")
	if !ok {
		return nil
	}
	updated, err := normalize.TimestampDate(timestamp)
	if err != nil {
		e.tel.ReportWarning(report_models_parse_updated, err, modelUrl, timestamp)
		return nil
	}
	return &updated
}

// TrendingModels runs the models pipeline: fetch the listing, then extract every
// card on it.
func (c *Client) TrendingModels(ctx context.Context) ([]ModelRecord, error) {
	ctx, span := tracer.Start(ctx, "TrendingModels")
	defer span.End()

	page, err := c.FetchPage(ctx, c.endpoint(modelsPath))
	if err != nil {
		c.tel.ReportBroken(report_models_fetch_listing, err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		return nil, err
	}
	return c.extractor.ParseModels(ctx, page)
}
