package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const wikiPage = `<html><body>
<div id="mw-content-text"><div class="mw-parser-output">
<p class="mw-empty-elt"></p>
<p><span>Coordinates: 48°51′N 2°21′E</span></p>
<p><b>Paris</b> is the capital and largest city of France. With an estimated population
of over two million residents, it is a major European hub.<sup>[1]</sup><sup>[2]</sup></p>
<p>Second paragraph that should not be returned.</p>
</div></div>
</body></html>`

func TestCityInfoFetch(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(wikiPage))
	}))
	defer srv.Close()

	s := NewCityInfoService(srv.URL, "test-agent/1.0", 5*time.Second)

	info, err := s.Fetch(context.Background(), "paris")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != "/wiki/Paris" {
		t.Errorf("запрошен путь %q, ожидается /wiki/Paris", gotPath)
	}
	if !strings.HasPrefix(info.Summary, "Paris is the capital") {
		t.Errorf("Summary = %q", info.Summary)
	}
	// Сноски вырезаны
	if strings.Contains(info.Summary, "[1]") {
		t.Errorf("сноски не вырезаны: %q", info.Summary)
	}
	if strings.Contains(info.Summary, "Second paragraph") {
		t.Error("возвращен не первый абзац")
	}
}

func TestCityInfoMultiWordCity(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(wikiPage))
	}))
	defer srv.Close()

	s := NewCityInfoService(srv.URL, "test-agent/1.0", 5*time.Second)
	if _, err := s.Fetch(context.Background(), "new york"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != "/wiki/New_York" {
		t.Errorf("запрошен путь %q, ожидается /wiki/New_York", gotPath)
	}
}

func TestCityInfoNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewCityInfoService(srv.URL, "test-agent/1.0", 5*time.Second)
	if _, err := s.Fetch(context.Background(), "atlantis"); statusOf(t, err) != 404 {
		t.Error("отсутствующая статья должна давать 404")
	}
}

func TestCityInfoValidation(t *testing.T) {
	s := NewCityInfoService("http://127.0.0.1:0", "test-agent/1.0", time.Second)
	if _, err := s.Fetch(context.Background(), "  "); statusOf(t, err) != 400 {
		t.Error("пустой город должен давать 400")
	}
}
