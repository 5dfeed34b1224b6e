package resolver

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// cacheTTL bounds how long a probe result is trusted.
const cacheTTL = 30 * 24 * time.Hour

// maxManifestSize caps how much of a pkgdown.yml response is read.
const maxManifestSize = 1 << 20

// candidateBases are the site layouts pkgdown packages commonly
// publish under, probed in order.
var candidateBases = []string{
	"https://{pkg}.r-lib.org",
	"https://{pkg}.tidyverse.org",
	"https://docs.ropensci.org/{pkg}",
}

// Resolver maps external package names to reference-documentation base
// URLs. Results are memoized in memory and, when a DiskCache is
// attached, persisted across runs. Safe for concurrent use: the
// in-memory map is only written before or after the driver's parallel
// section, and reads go through Resolve which is itself serialized by
// the disk cache's lock.
type Resolver struct {
	client *http.Client
	cache  *DiskCache
	now    func() time.Time
	mem    map[string]Entry
}

// New creates a resolver. cache may be nil (no persistence); client
// nil means a default client with a 10-second timeout.
func New(cache *DiskCache, client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{
		client: client,
		cache:  cache,
		now:    time.Now,
		mem:    make(map[string]Entry),
	}
}

// Resolve returns the reference base URL for a package, probing
// candidate pkgdown sites on a cache miss. ok is false when no site
// answered.
func (r *Resolver) Resolve(ctx context.Context, pkg string) (string, bool) {
	if entry, hit := r.lookup(pkg); hit {
		return entry.URL, entry.Found
	}

	entry := Entry{Package: pkg, FetchedAt: r.now().Unix()}
	if url, found := r.probe(ctx, pkg); found {
		entry.URL = url
		entry.Found = true
	}
	r.mem[pkg] = entry
	// Negative results are cached too; a broken write only costs a
	// re-probe next run.
	_ = r.cache.Put(&entry)
	return entry.URL, entry.Found
}

// ResolveAll resolves every package, returning only the found ones as
// a name-to-URL map suitable for convert.Options.ExternalPackageURLs.
func (r *Resolver) ResolveAll(ctx context.Context, pkgs []string) map[string]string {
	out := make(map[string]string)
	for _, pkg := range pkgs {
		if url, ok := r.Resolve(ctx, pkg); ok {
			out[pkg] = url
		}
	}
	return out
}

func (r *Resolver) lookup(pkg string) (Entry, bool) {
	if entry, ok := r.mem[pkg]; ok {
		return entry, true
	}
	var entry Entry
	hit, err := r.cache.Get(pkg, &entry)
	if err != nil || !hit {
		return Entry{}, false
	}
	if r.now().Sub(time.Unix(entry.FetchedAt, 0)) > cacheTTL {
		return Entry{}, false
	}
	r.mem[pkg] = entry
	return entry, true
}

func (r *Resolver) probe(ctx context.Context, pkg string) (string, bool) {
	for _, pattern := range candidateBases {
		base := strings.ReplaceAll(pattern, "{pkg}", pkg)
		if url, ok := r.probeBase(ctx, base); ok {
			return url, true
		}
	}
	return "", false
}

// probeBase fetches <base>/pkgdown.yml. A 200 response marks the site
// as a pkgdown site; its urls.reference value wins when present,
// otherwise the conventional <base>/reference/ is assumed.
func (r *Resolver) probeBase(ctx context.Context, base string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/pkgdown.yml", nil)
	if err != nil {
		return "", false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return "", false
	}
	if url := referenceURL(body); url != "" {
		return url, true
	}
	return base + "/reference/", true
}

// referenceURL pulls urls.reference out of a pkgdown.yml body. The
// manifest is machine-generated with a fixed two-level shape, so a
// line scan is enough; anything unexpected falls back to the
// conventional layout.
func referenceURL(body []byte) string {
	inURLs := false
	for line := range strings.Lines(string(body)) {
		line = strings.TrimRight(line, "\n")
		trimmed := strings.TrimSpace(line)
		indented := line != trimmed
		switch {
		case !indented && trimmed == "urls:":
			inURLs = true
		case !indented && trimmed != "":
			inURLs = false
		case inURLs && indented:
			if value, ok := strings.CutPrefix(trimmed, "reference:"); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return ""
}
