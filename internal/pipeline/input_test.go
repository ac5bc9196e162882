package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Write temp file: %v", err)
	}
	return path
}

func TestLoadCitationsFile(t *testing.T) {
	path := writeTempFile(t, "citations.json", `{
  "source": "minutes.html",
  "citations": [
    {"phrase": "the committee approved the budget", "source_url": "https://example.org/minutes", "page": 2, "line": 14},
    {"phrase": "attendance was recorded", "anchor_text": "annex", "source_url": "https://example.org/minutes"}
  ]
}`)

	file, err := LoadCitationsFile(path)
	if err != nil {
		t.Fatalf("LoadCitationsFile: %v", err)
	}
	if file.Source != "minutes.html" {
		t.Errorf("Unexpected source: %s", file.Source)
	}
	if len(file.Citations) != 2 {
		t.Fatalf("Expected 2 citations, got %d", len(file.Citations))
	}
	if file.Citations[0].Page == nil || *file.Citations[0].Page != 2 {
		t.Errorf("Expected cited page 2, got %v", file.Citations[0].Page)
	}
	if file.Citations[1].AnchorText != "annex" {
		t.Errorf("Unexpected anchor text: %s", file.Citations[1].AnchorText)
	}
}

func TestLoadCitationsFile_Errors(t *testing.T) {
	tests := []struct {
		content string
		desc    string
	}{
		{content: `{"citations": []}`, desc: "no citations"},
		{content: `not json`, desc: "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			path := writeTempFile(t, "bad.json", tt.content)
			if _, err := LoadCitationsFile(path); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := LoadCitationsFile("/nonexistent/citations.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadRecordsFile(t *testing.T) {
	path := writeTempFile(t, "records.json", `{
  "records": [
    {
      "citation": {"phrase": "the committee approved the budget"},
      "verification": {
        "status": "found",
        "search_attempts": [
          {"method": "exact_phrase", "success": true, "matched_variation": "exact_phrase"}
        ]
      }
    },
    {"verification": {"status": "not_found"}}
  ]
}`)

	file, err := LoadRecordsFile(path)
	if err != nil {
		t.Fatalf("LoadRecordsFile: %v", err)
	}
	if len(file.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(file.Records))
	}

	first := file.Records[0]
	if first.Verification == nil || first.Verification.Status != "found" {
		t.Errorf("Unexpected verification: %+v", first.Verification)
	}
	if len(first.Verification.SearchAttempts) != 1 || !first.Verification.SearchAttempts[0].Success {
		t.Errorf("Unexpected attempts: %+v", first.Verification.SearchAttempts)
	}

	if _, err := LoadRecordsFile(writeTempFile(t, "empty.json", `{"records": []}`)); err == nil {
		t.Error("Expected error for empty records")
	}
}
