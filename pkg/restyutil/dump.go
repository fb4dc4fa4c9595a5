// Package restyutil holds resty middleware that isn't telemetry.
package restyutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// PageDump writes the body of every response a client receives into a directory,
// one file per response. Dumped pages are what test fixtures get refreshed from
// when the scraped site changes its markup.
type PageDump struct {
	directory string
	counter   *uint64
}

// NewPageDump returns a dump that writes into dir, creating it if needed. Files
// already in dir are left alone, only dump files of the same name get replaced.
func NewPageDump(dir string) (PageDump, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return PageDump{}, err
	}
	var counter uint64
	return PageDump{directory: dir, counter: &counter}, nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename is the name a response for the given url path is dumped under, n
// orders the files by arrival.
func Filename(n uint64, path string) string {
	name := unsafeFilename.ReplaceAllString(strings.Trim(path, "/"), "_")
	if name == "" {
		name = "index"
	}
	return fmt.Sprintf("%03d-%s.html", n, name)
}

func (d PageDump) Write(name string, contents []byte) {
	err := os.WriteFile(filepath.Join(d.directory, name), contents, 0600)
	if err != nil {
		slog.Warn("failed to write page dump", "name", name, "err", err)
	}
}

// Attach makes client dump every response it receives.
func (d PageDump) Attach(client *resty.Client) {
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		n := atomic.AddUint64(d.counter, 1)
		d.Write(Filename(n, res.Request.RawRequest.URL.Path), res.Body())
		return nil
	})
}
