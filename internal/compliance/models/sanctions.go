package models

import "time"

// EntityType distinguishes natural persons from legal entities on a sanctions list.
type EntityType string

const (
	EntityIndividual   EntityType = "individual"
	EntityOrganization EntityType = "organization"
)

// SanctionedEntity is one designation on a sanctions list.
type SanctionedEntity struct {
	Name         string     `json:"name" yaml:"name"`
	Aliases      []string   `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Type         EntityType `json:"type" yaml:"type"`
	DateOfBirth  string     `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	Nationality  string     `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	SanctionType string     `json:"sanction_type" yaml:"sanction_type"`
	AddedDate    time.Time  `json:"added_date" yaml:"added_date"`
}

// SanctionsList is a named, versioned collection of designations.
//
// Invariants:
//   - ID is unique within a registry
//   - a registered list is never mutated; updates replace it wholesale
//   - Version increases by one on every replacement of the same ID
type SanctionsList struct {
	ID          string             `json:"id" yaml:"id"`
	Source      string             `json:"source" yaml:"source"`
	Entities    []SanctionedEntity `json:"entities" yaml:"entities"`
	LastUpdated time.Time          `json:"last_updated" yaml:"last_updated"`
	Version     int                `json:"version" yaml:"version"`
}

// MatchType records which comparison produced a sanctions match.
type MatchType string

const (
	MatchExact MatchType = "exact"
	MatchAlias MatchType = "alias"
	MatchFuzzy MatchType = "fuzzy"
)

// Matched field names reported on a SanctionMatch.
const (
	FieldName        = "name"
	FieldAlias       = "alias"
	FieldNameFuzzy   = "name_fuzzy"
	FieldDateOfBirth = "dateOfBirth"
)

// SanctionMatch is a screening hit against a single entity.
type SanctionMatch struct {
	Entity        SanctionedEntity `json:"entity"`
	ListID        string           `json:"list_id"`
	MatchScore    int              `json:"match_score"`
	MatchType     MatchType        `json:"match_type"`
	MatchedFields []string         `json:"matched_fields"`
}

// PEPEntry is a politically exposed person on file.
type PEPEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Position    string   `json:"position" yaml:"position"`
	Country     string   `json:"country" yaml:"country"`
	DateOfBirth string   `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
}

// PEPMatch is a screening hit against the PEP registry.
type PEPMatch struct {
	Entry      PEPEntry `json:"entry"`
	MatchScore int      `json:"match_score"`
}

// ScreeningHit is a result returned by an external screening vendor
// (adverse media and similar).
type ScreeningHit struct {
	Source   string   `json:"source"`
	Headline string   `json:"headline"`
	Severity Severity `json:"severity"`
}
