package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleDescription = `Package: mypkg
Type: Package
Title: A Sample Package
Version: 1.2.3
Depends:
    R (>= 4.0),
    rlang
Imports:
    cli (>= 3.6.0),
    vctrs,
    rlang
Suggests: testthat (>= 3.0.0)
URL: https://example.org/mypkg
`

func TestParseDescription(t *testing.T) {
	d := ParseDescription([]byte(sampleDescription))

	if d.Package != "mypkg" {
		t.Errorf("package = %q", d.Package)
	}
	if len(d.Depends) != 2 || d.Depends[0] != "R" || d.Depends[1] != "rlang" {
		t.Errorf("depends = %v", d.Depends)
	}
	if len(d.Imports) != 3 || d.Imports[0] != "cli" {
		t.Errorf("imports = %v", d.Imports)
	}
	if len(d.Suggests) != 1 || d.Suggests[0] != "testthat" {
		t.Errorf("suggests = %v", d.Suggests)
	}

	pkgs := d.Packages()
	if want := []string{"cli", "rlang", "testthat", "vctrs"}; len(pkgs) != len(want) {
		t.Fatalf("packages = %v", pkgs)
	} else {
		for i := range want {
			if pkgs[i] != want[i] {
				t.Fatalf("packages = %v, want %v", pkgs, want)
			}
		}
	}
}

func TestParseDescriptionEmpty(t *testing.T) {
	d := ParseDescription([]byte("Package: tiny\n"))
	if len(d.Packages()) != 0 {
		t.Errorf("packages = %v", d.Packages())
	}
}

func TestReferenceURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"with reference",
			"pandoc: 3.1\nurls:\n  reference: https://cli.r-lib.org/reference\n  article: https://cli.r-lib.org/articles\n",
			"https://cli.r-lib.org/reference",
		},
		{
			"no urls block",
			"pandoc: 3.1\npkgdown: 2.0.7\n",
			"",
		},
		{
			"urls without reference",
			"urls:\n  article: https://x.test/articles\nlast_built: 2024-01-01\n",
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := referenceURL([]byte(tt.body)); got != tt.want {
				t.Errorf("referenceURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	put := Entry{Package: "cli", URL: "https://cli.r-lib.org/reference", Found: true, FetchedAt: 1700000000}
	if err := cache.Put(&put); err != nil {
		t.Fatal(err)
	}

	var got Entry
	hit, err := cache.Get("cli", &got)
	if err != nil || !hit {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
	if got.URL != put.URL || !got.Found || got.Schema != cacheSchemaVersion {
		t.Errorf("entry = %+v", got)
	}

	hit, err = cache.Get("absent", &got)
	if err != nil || hit {
		t.Errorf("miss expected, hit=%v err=%v", hit, err)
	}
}

func TestCacheDropAll(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	put := Entry{Package: "rlang", URL: "https://rlang.r-lib.org/reference", Found: true, FetchedAt: 1700000000}
	if err := cache.Put(&put); err != nil {
		t.Fatal(err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}

	var got Entry
	hit, err := cache.Get("rlang", &got)
	if err != nil || hit {
		t.Errorf("miss expected after drop, hit=%v err=%v", hit, err)
	}

	var nilCache *DiskCache
	if err := nilCache.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(&Entry{Package: "x"}); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	hit, err := cache.Get("x", &Entry{})
	if err != nil || hit {
		t.Errorf("Get on nil cache: hit=%v err=%v", hit, err)
	}
}

// probeServer fakes a pkgdown site for one package name.
func probeServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pkgdown.yml" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveUsesProbedReference(t *testing.T) {
	srv := probeServer(t, "urls:\n  reference: https://probe.test/reference\n")

	r := New(nil, srv.Client())
	withCandidates(t, []string{srv.URL})

	url, ok := r.Resolve(context.Background(), "cli")
	if !ok || url != "https://probe.test/reference" {
		t.Errorf("resolve = %q, %v", url, ok)
	}
}

func TestResolveCachesNegativeResult(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	}))
	t.Cleanup(counting.Close)
	withCandidates(t, []string{counting.URL})

	r := New(cache, counting.Client())
	if _, ok := r.Resolve(context.Background(), "ghost"); ok {
		t.Error("resolve should fail")
	}
	first := calls

	// Second resolver, same disk cache: no new probes.
	r2 := New(cache, counting.Client())
	if _, ok := r2.Resolve(context.Background(), "ghost"); ok {
		t.Error("cached negative should stay negative")
	}
	if calls != first {
		t.Errorf("probe count grew from %d to %d", first, calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	stale := Entry{Package: "old", URL: "https://old.test", Found: true,
		FetchedAt: time.Now().Add(-2 * cacheTTL).Unix()}
	if err := cache.Put(&stale); err != nil {
		t.Fatal(err)
	}

	r := New(cache, nil)
	if _, hit := r.lookup("old"); hit {
		t.Error("expired entry should miss")
	}
}

// withCandidates swaps the probe base list for the test's duration.
func withCandidates(t *testing.T, bases []string) {
	t.Helper()
	saved := candidateBases
	candidateBases = bases
	t.Cleanup(func() { candidateBases = saved })
}
