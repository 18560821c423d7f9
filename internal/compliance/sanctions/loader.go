package sanctions

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"kycaml/internal/compliance/models"
)

// feedFile is the on-disk layout of a sanctions feed export.
type feedFile struct {
	Lists []models.SanctionsList `yaml:"lists"`
	PEPs  []models.PEPEntry      `yaml:"peps"`
}

// Feed is the decoded content of a feed file.
type Feed struct {
	Lists []models.SanctionsList
	PEPs  []models.PEPEntry
}

// LoadFile reads a YAML feed from path.
func LoadFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sanctions feed: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a YAML feed. Unknown fields are rejected.
func Decode(r io.Reader) (*Feed, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f feedFile
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, models.NewSanctionsCheckError("decode_sanctions_feed", "invalid feed", err)
	}
	for _, l := range f.Lists {
		if err := validateList(l); err != nil {
			return nil, err
		}
	}
	return &Feed{Lists: f.Lists, PEPs: f.PEPs}, nil
}
