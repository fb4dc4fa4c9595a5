package telemetry

import (
	"fmt"
)

// API is the reporting surface every component logs and counts through. It keeps
// components independent of slog/otel so tests can assert on what was reported.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that failed in a way that should be addressed.
	//
	// The `id` names the component that broke, not the line of code that broke. For
	// example, a failed detail page request in the paper pipeline is reported as
	// `papers.fetch-details`. Further context (the url, the wrapped error) goes into
	// params.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	//
	// Use ScopedAPI to prefix ids with the package they originate from.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that is not necessarily broken but may be worth
	// looking at, such as a card whose timestamp could not be parsed.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information that is only useful while developing.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the count of something at the current time, such as the
	// number of cards found on a listing page. Counts are points of data, they
	// should not be summed.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id it reports with a namespace, much like a sub-logger.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
