package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/citelens/citelens/internal/model"
)

// CitationsFile is the on-disk input to verify: citations to check,
// optionally labeled with where they came from.
type CitationsFile struct {
	Source    string           `json:"source,omitempty"`
	Citations []model.Citation `json:"citations"`
}

// RecordsFile is the on-disk input to classify: verification records
// produced by a search process, optionally paired with their citations.
type RecordsFile struct {
	Source  string   `json:"source,omitempty"`
	Records []Record `json:"records"`
}

// Record is one verification record with its optional citation.
type Record struct {
	Citation     *model.Citation     `json:"citation,omitempty"`
	Verification *model.Verification `json:"verification,omitempty"`
}

// LoadCitationsFile reads and decodes a citations input file.
func LoadCitationsFile(path string) (*CitationsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read citations file: %w", err)
	}

	var file CitationsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode citations file: %w", err)
	}
	if len(file.Citations) == 0 {
		return nil, fmt.Errorf("citations file %s contains no citations", path)
	}
	return &file, nil
}

// LoadRecordsFile reads and decodes a verification records file.
func LoadRecordsFile(path string) (*RecordsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	var file RecordsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode records file: %w", err)
	}
	if len(file.Records) == 0 {
		return nil, fmt.Errorf("records file %s contains no records", path)
	}
	return &file, nil
}
