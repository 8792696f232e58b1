package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the only schema document version understood.
const DocumentVersion = "1"

// LoadFile loads a schema document from path and returns its validated
// catalog. Files ending in .json are decoded as JSON, anything else as YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var doc *Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = ParseJSON(data)
	} else {
		doc, err = Parse(data)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cat, err := doc.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cat, nil
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if err := applyDefaults(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseJSON parses JSON data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	if err := applyDefaults(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// applyDefaults fills in the version and rejects unknown ones.
func applyDefaults(doc *Document) error {
	if doc.Version == "" {
		doc.Version = DocumentVersion
	}

	if doc.Version != DocumentVersion {
		return fmt.Errorf("unsupported schema document version %q", doc.Version)
	}

	return nil
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a Document to path as YAML.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal schema document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}
