package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"kycaml/internal/compliance/models"
)

// =============================================================================
// Document Verifier Test Suite
// =============================================================================
// Justification for unit tests: verification is a pure comparison of two
// records; each issue code and the confidence weighting are observable only
// through the result.

type VerifierSuite struct {
	suite.Suite
	verifier *Verifier
	customer models.Customer
	now      time.Time
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func (s *VerifierSuite) SetupTest() {
	s.verifier = New()
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s.customer = models.Customer{
		ID:          "cust-1",
		Name:        "John Smith",
		DateOfBirth: "1985-03-15",
		Nationality: "US",
	}
}

func (s *VerifierSuite) request(mutate func(*models.DocumentVerificationRequest)) models.DocumentVerificationRequest {
	req := models.DocumentVerificationRequest{
		CustomerID:   "cust-1",
		DocumentType: models.DocumentPassport,
		DocumentData: models.DocumentData{
			Number:      "P1234567",
			Name:        "John Smith",
			DateOfBirth: "1985-03-15",
			Nationality: "US",
			ExpiryDate:  "2030-01-01",
		},
	}
	if mutate != nil {
		mutate(&req)
	}
	return req
}

func codes(issues []models.VerificationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

// =============================================================================
// Happy Path
// =============================================================================

func (s *VerifierSuite) TestMatchingDocument() {
	s.Run("all fields match", func() {
		result, err := s.verifier.Verify(s.request(nil), s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
		s.Empty(result.Issues)
		s.InDelta(1.0, result.Confidence, 1e-9)
		s.Equal(s.now, result.VerifiedAt)
		s.Equal("P1234567", result.ExtractedData.Number)
	})

	s.Run("minor name variation stays above threshold", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Name = "Jon Smith" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
		s.Less(result.Confidence, 1.0)
	})

	s.Run("document expiring today is still valid", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.ExpiryDate = "2024-06-01" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
	})

	s.Run("number separators are ignored", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Number = "ab-123 456" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
	})
}

// =============================================================================
// Issues
// =============================================================================

func (s *VerifierSuite) TestIssues() {
	s.Run("expired document", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.ExpiryDate = "2020-01-01" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueDocumentExpired}, codes(result.Issues))
		s.InDelta(0.85, result.Confidence, 1e-9)
	})

	s.Run("name mismatch", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Name = "Jane Doe" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Contains(codes(result.Issues), models.IssueNameMismatch)
	})

	s.Run("date of birth mismatch", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.DateOfBirth = "1986-03-15" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueDOBMismatch}, codes(result.Issues))
		s.InDelta(0.75, result.Confidence, 1e-9)
	})

	s.Run("nationality mismatch", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Nationality = "CA" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueNationalityMismatch}, codes(result.Issues))
	})

	s.Run("nationality comparison ignores case", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Nationality = "us" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
	})

	s.Run("unsupported document type", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentType = "library_card" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueInvalidDocumentType}, codes(result.Issues))
	})

	s.Run("malformed document number", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Number = "12345" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueInvalidDocumentNumber}, codes(result.Issues))
	})

	s.Run("national id allows longer numbers than passport", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) {
			r.DocumentType = models.DocumentNationalID
			r.DocumentData.Number = "ID1234567890"
		})
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
	})

	s.Run("request for a different customer", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.CustomerID = "cust-2" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueCustomerMismatch}, codes(result.Issues))
	})

	s.Run("unparsable expiry date", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.ExpiryDate = "01/01/2030" })
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.False(result.IsValid)
		s.Equal([]string{models.IssueInvalidExpiryDate}, codes(result.Issues))
	})
}

// =============================================================================
// Missing Fields
// =============================================================================

func (s *VerifierSuite) TestMissingFields() {
	s.Run("missing name is a verification error", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Name = "  " })
		_, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().Error(err)
		s.True(models.IsKind(err, models.KindDocumentVerification))
	})

	s.Run("missing optional fields produce info issues only", func() {
		req := s.request(func(r *models.DocumentVerificationRequest) {
			r.DocumentData.Number = ""
			r.DocumentData.DateOfBirth = ""
			r.DocumentData.ExpiryDate = ""
			r.DocumentData.Nationality = ""
		})
		result, err := s.verifier.Verify(req, s.customer, s.now)
		s.Require().NoError(err)
		s.True(result.IsValid)
		s.Empty(result.Errors())
		s.Equal([]string{
			models.IssueNumberUnverified,
			models.IssueDOBUnverified,
			models.IssueExpiryUnverified,
			models.IssueNationalityUnverified,
		}, codes(result.Issues))
		for _, issue := range result.Issues {
			s.Equal(models.IssueInfo, issue.Severity)
		}
		s.InDelta(1.0, result.Confidence, 1e-9)
	})
}

func (s *VerifierSuite) TestMissingNumberKeepsDocumentValid() {
	req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Number = "  " })
	result, err := s.verifier.Verify(req, s.customer, s.now)
	s.Require().NoError(err)
	s.True(result.IsValid)
	s.Equal([]string{models.IssueNumberUnverified}, codes(result.Issues))
	s.InDelta(1.0, result.Confidence, 1e-9)
}

func (s *VerifierSuite) TestNameThresholdOption() {
	strict := New(WithNameThreshold(0.95))
	req := s.request(func(r *models.DocumentVerificationRequest) { r.DocumentData.Name = "Jon Smith" })
	result, err := strict.Verify(req, s.customer, s.now)
	s.Require().NoError(err)
	s.False(result.IsValid)
	s.Equal([]string{models.IssueNameMismatch}, codes(result.Issues))
}
