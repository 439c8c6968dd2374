package scrape

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mkraft/missiontext/urlcheck"
)

func TestFetch_Success(t *testing.T) {
	// WHAT: Basic HTTP GET returns body and hash.
	// WHY: Core fetcher functionality.
	body := "Hello, World!"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{})
	result, err := f.Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.StatusCode != 200 {
		t.Errorf("status: got %d", result.StatusCode)
	}
	if string(result.Body) != body {
		t.Errorf("body: got %q", string(result.Body))
	}
	if !result.Changed {
		t.Error("should be changed (no previous hash)")
	}
	h := sha256.Sum256([]byte(body))
	want := fmt.Sprintf("%x", h)
	if result.Hash != want {
		t.Errorf("hash: got %q, want %q", result.Hash, want)
	}
}

func TestFetch_UserAgent(t *testing.T) {
	// WHAT: The configured user agent is sent with requests.
	// WHY: Some journal mirrors refuse the default Go agent string.
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{})
	if _, err := f.Fetch(context.Background(), srv.URL, ""); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != browserUserAgent {
		t.Errorf("user agent: got %q", got)
	}
}

func TestFetch_UnchangedHash(t *testing.T) {
	// WHAT: Same content hash means Changed=false.
	// WHY: Re-scrapes must not rewrite files whose pages did not change.
	body := "same content"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	h := sha256.Sum256([]byte(body))
	prevHash := fmt.Sprintf("%x", h)

	f := NewFetcher(FetcherConfig{})
	result, err := f.Fetch(context.Background(), srv.URL, prevHash)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Changed {
		t.Error("same hash should mean unchanged")
	}
}

func TestFetch_Timeout(t *testing.T) {
	// WHAT: Fetch respects the configured timeout.
	// WHY: Slow pages must not block the run indefinitely.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{Timeout: 100 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL, "")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestFetch_MaxBody(t *testing.T) {
	// WHAT: Body is truncated to MaxBytes.
	// WHY: Prevents memory exhaustion from large responses.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 1000; i++ {
			w.Write([]byte("x"))
		}
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{MaxBytes: 100})
	result, err := f.Fetch(context.Background(), srv.URL, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(result.Body) > 100 {
		t.Errorf("body too large: %d bytes, max 100", len(result.Body))
	}
}

func TestFetch_SchemeBlocked(t *testing.T) {
	// WHAT: Non-http(s) URLs are rejected before any request.
	// WHY: Journal link lists occasionally carry ftp and file URLs.
	f := NewFetcher(FetcherConfig{})
	_, err := f.Fetch(context.Background(), "ftp://example.com/file.txt", "")
	if err == nil {
		t.Fatal("expected error for ftp URL")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Errorf("expected blocked error, got: %v", err)
	}
}

func TestFetch_PrivateHostBlocked(t *testing.T) {
	// WHAT: With CheckPublic as the validator, loopback URLs are refused.
	// WHY: User-supplied URL lists must not reach internal services.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("internal"))
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{URLValidator: urlcheck.CheckPublic})
	_, err := f.Fetch(context.Background(), srv.URL, "")
	if err == nil {
		t.Fatal("expected error for loopback URL")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Errorf("expected blocked error, got: %v", err)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	// WHAT: Non-2xx/3xx responses return an error plus the status code.
	// WHY: Callers log the code in the fetch log.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{})
	result, err := f.Fetch(context.Background(), srv.URL, "")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if result == nil || result.StatusCode != 404 {
		t.Errorf("result: %+v", result)
	}
}

func TestFetch_TooManyRedirects(t *testing.T) {
	// WHAT: More than 5 redirects are blocked.
	// WHY: Redirect loop protection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.String()+"x", http.StatusFound)
	}))
	defer srv.Close()

	f := NewFetcher(FetcherConfig{})
	_, err := f.Fetch(context.Background(), srv.URL+"/start", "")
	if err == nil {
		t.Fatal("expected error for too many redirects")
	}
	if !strings.Contains(err.Error(), "redirect") {
		t.Errorf("expected redirect error, got: %v", err)
	}
}
