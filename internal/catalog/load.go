package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/jobs.json data/jobs.schema.json
var dataFS embed.FS

// LoadEmbedded loads the postings compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/jobs.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return Parse(raw)
}

// LoadFile loads postings from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse validates raw against the catalog JSON Schema and decodes it.
func Parse(raw []byte) (*Catalog, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var postings []JobPosting
	if err := json.Unmarshal(raw, &postings); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(postings)
}

// Validate checks raw against the embedded catalog schema.
func Validate(raw []byte) error {
	schema, err := dataFS.ReadFile("data/jobs.schema.json")
	if err != nil {
		return fmt.Errorf("read catalog schema: %w", err)
	}

	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("catalog schema validation failed: %s", strings.Join(msgs, "; "))
}
