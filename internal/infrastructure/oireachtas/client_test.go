package oireachtas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bubcass/oireachtas-archive/internal/config"
)

func newTestClient(serverURL string, httpClient *http.Client) *Client {
	cfg := config.FetchConfig{
		BaseURL:   serverURL,
		UserAgent: "oireachtas-local-poc/1.0",
	}
	return NewClient(cfg, httpClient)
}

func TestFetchDayReturnsRecord(t *testing.T) {
	t.Parallel()

	body := "<?xml version=\"1.0\"?><akomaNtoso>" + strings.Repeat("d", 200) + "</akomaNtoso>"
	day := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)

	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.Client())

	record, err := client.FetchDay(context.Background(), day)
	if err != nil {
		t.Fatalf("FetchDay error: %v", err)
	}
	if record == nil {
		t.Fatalf("expected a record")
	}

	if gotPath != "/2026-02-05/debate/mul@/main.xml" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
	if gotUA != "oireachtas-local-poc/1.0" {
		t.Fatalf("unexpected user agent: %s", gotUA)
	}
	if string(record.Body) != body {
		t.Fatalf("body not preserved byte-for-byte")
	}
	if record.Filename() != "2026-02-05_mul@.xml" {
		t.Fatalf("unexpected filename: %s", record.Filename())
	}
}

func TestFetchDayTreats404AsMissing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.Client())

	record, err := client.FetchDay(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("404 must not be an error: %v", err)
	}
	if record != nil {
		t.Fatalf("404 must yield no record")
	}
}

func TestFetchDayRejectsHTMLBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!doctype html><html><body>" + strings.Repeat("no record ", 50) + "</body></html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.Client())

	record, err := client.FetchDay(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("HTML body must not be an error: %v", err)
	}
	if record != nil {
		t.Fatalf("HTML body must yield no record")
	}
}

func TestFetchDayReportsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, nil)

	if _, err := client.FetchDay(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected transport error from closed server")
	}
}
