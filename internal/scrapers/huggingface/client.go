// client.go contains the http side of the scraper, everything that turns a url into
// page contents. Turning page contents into records lives in models.go and papers.go.

package huggingface

import (
	"context"
	"errors"
	"hftrending/internal/components/assert"
	"hftrending/internal/components/telemetry"
	"hftrending/pkg/restyutil"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseUrl   = "https://huggingface.co"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	modelsPath         = "/models"
	trendingPapersPath = "/papers/trending"
)

const (
	report_client_fetch_page = "client.fetch-page"
)

var tracer = otel.Tracer("hftrending/scrapers/huggingface")

var meter = otel.Meter("hftrending/scrapers/huggingface")
var pagesFetched, _ = meter.Int64Counter("pages_fetched")
var fetchFailures, _ = meter.Int64Counter("fetch_failures")

type Options struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// defaults to DefaultUserAgent
	UserAgent string
	// 0 keeps the transport default, which never times out
	Timeout             time.Duration
	CloudflareBypass    bool
	DetailFailurePolicy DetailFailurePolicy
	// when set, every fetched page is also written into this directory
	DumpDir string
}

type Client struct {
	baseUrl   *url.URL
	http      *resty.Client
	extractor Extractor
	policy    DetailFailurePolicy

	tel telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.DetailFailurePolicy == "" {
		opts.DetailFailurePolicy = AbortOnDetailFailure
	}
	assert.OneOf(opts.DetailFailurePolicy, AbortOnDetailFailure, DropFailedDetails)

	extractor, err := NewExtractor(opts.BaseUrl, tel)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetHeader("user-agent", opts.UserAgent)
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	telemetry.InstrumentResty(httpClient, telemetry.NewScopedAPI("huggingface", tel))
	if opts.DumpDir != "" {
		dump, err := restyutil.NewPageDump(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		dump.Attach(httpClient)
	}

	return &Client{
		baseUrl:   extractor.baseUrl,
		http:      httpClient,
		extractor: extractor,
		policy:    opts.DetailFailurePolicy,
		tel:       telemetry.NewScopedAPI("huggingface", tel),
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseUrl.JoinPath(path).String()
}

// FetchPage makes a single GET request and returns the body as text. Anything
// other than a 2xx response is a *FetchError.
func (c *Client) FetchPage(ctx context.Context, link string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchPage", trace.WithAttributes(
		attribute.String("url", link),
	))
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		fetchFailures.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return "", &FetchError{Url: link, Err: err}
	}
	if !res.IsSuccess() {
		fetchFailures.Add(ctx, 1, metric.WithAttributes(attribute.Int("status", res.StatusCode())))
		span.SetStatus(codes.Error, res.Status())
		c.tel.ReportDebug(report_client_fetch_page, link, res.Status())
		return "", &FetchError{
			Url:        link,
			StatusCode: res.StatusCode(),
			Err:        errors.New(res.Status()),
		}
	}

	pagesFetched.Add(ctx, 1)
	return res.String(), nil
}
