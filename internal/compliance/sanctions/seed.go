package sanctions

import (
	"time"

	"kycaml/internal/compliance/models"
)

// DefaultListID identifies the built-in consolidated list.
const DefaultListID = "default"

// DefaultList is the demonstration list loaded when no feed is configured.
func DefaultList(now time.Time) models.SanctionsList {
	return models.SanctionsList{
		ID:     DefaultListID,
		Source: "OFAC/UN/EU Consolidated",
		Entities: []models.SanctionedEntity{
			{
				Name:         "Restricted Entity Alpha",
				Aliases:      []string{"REA", "Entity A"},
				Type:         models.EntityOrganization,
				SanctionType: "Financial sanctions",
				AddedDate:    time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				Name:         "John Restricted",
				DateOfBirth:  "1970-01-01",
				Nationality:  "XX",
				Type:         models.EntityIndividual,
				SanctionType: "Asset freeze",
				AddedDate:    time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		LastUpdated: now,
		Version:     1,
	}
}
