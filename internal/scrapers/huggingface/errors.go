package huggingface

import (
	"fmt"
	"strings"
)

// FetchError is returned when a page could not be downloaded, either because the
// request failed or because the response was not 2xx.
type FetchError struct {
	Url string
	// 0 when no response was received
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Url, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DetailFailurePolicy decides what happens to the paper pipeline when one of the
// detail page fetches fails.
type DetailFailurePolicy string

const (
	// AbortOnDetailFailure fails the whole batch on the first failed fetch.
	AbortOnDetailFailure DetailFailurePolicy = "abort"
	// DropFailedDetails leaves papers whose detail page failed out of the result.
	DropFailedDetails DetailFailurePolicy = "drop"
)

func ParseDetailFailurePolicy(value string) (DetailFailurePolicy, error) {
	switch DetailFailurePolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", AbortOnDetailFailure:
		return AbortOnDetailFailure, nil
	case DropFailedDetails:
		return DropFailedDetails, nil
	}
	return "", fmt.Errorf("unknown detail failure policy %q, expected %q or %q", value, AbortOnDetailFailure, DropFailedDetails)
}
