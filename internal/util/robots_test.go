package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRobotsChecker_AllowAndDisallow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\nCrawl-delay: 1\n")
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)

	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/public/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("Expected public path allowed")
	}
	if delay != time.Second {
		t.Errorf("Expected 1s crawl delay, got %v", delay)
	}

	allowed, _, err = checker.CanFetch(context.Background(), server.URL+"/private/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if allowed {
		t.Error("Expected private path disallowed")
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			hits.Add(1)
			_, _ = fmt.Fprint(w, "User-agent: *\nAllow: /\n")
		}
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", 5*time.Second)
	for i := 0; i < 3; i++ {
		if _, _, err := checker.CanFetch(context.Background(), server.URL+"/page"); err != nil {
			t.Fatalf("CanFetch %d: %v", i, err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", hits.Load())
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	checker := NewRobotsChecker("test-agent", time.Second)

	allowed, _, err := checker.CanFetch(context.Background(), "http://127.0.0.1:1/page")
	if err != nil {
		t.Fatalf("CanFetch: %v", err)
	}
	if !allowed {
		t.Error("Expected unreachable robots.txt to allow the fetch")
	}
}
