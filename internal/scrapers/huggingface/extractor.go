package huggingface

import (
	"hftrending/internal/components/assert"
	"hftrending/internal/components/telemetry"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor turns listing and detail pages into records. It holds no state
// between calls, parsing the same page twice gives the same output.
type Extractor struct {
	baseUrl *url.URL
	tel     telemetry.API
}

// NewExtractor creates an extractor that resolves relative links against
// baseUrl.
func NewExtractor(baseUrl string, tel telemetry.API) (Extractor, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(baseUrl)

	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return Extractor{}, err
	}
	return Extractor{
		baseUrl: parsed,
		tel:     tel,
	}, nil
}

func parseDocument(page string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(page))
}
