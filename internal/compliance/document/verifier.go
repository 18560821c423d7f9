// Package document checks pre-extracted identity document fields against a customer record.
package document

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"kycaml/internal/compliance/matcher"
	"kycaml/internal/compliance/models"
)

const dateLayout = "2006-01-02"

// Confidence weights per verified component.
const (
	weightName        = 0.5
	weightDOB         = 0.25
	weightExpiry      = 0.15
	weightNationality = 0.1
)

// DefaultNameThreshold is the minimum similarity for a document name to match the customer.
const DefaultNameThreshold = 0.85

var numberFormats = map[models.DocumentType]*regexp.Regexp{
	models.DocumentPassport:       regexp.MustCompile(`^[A-Z0-9]{6,9}$`),
	models.DocumentNationalID:     regexp.MustCompile(`^[A-Z0-9]{8,12}$`),
	models.DocumentDriversLicense: regexp.MustCompile(`^[A-Z0-9]{8,15}$`),
}

var numberSeparators = strings.NewReplacer(" ", "", "-", "")

// Verifier validates document data. It is stateless and safe for concurrent use.
type Verifier struct {
	nameThreshold float64
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithNameThreshold overrides the name similarity threshold.
func WithNameThreshold(threshold float64) Option {
	return func(v *Verifier) {
		if threshold > 0 && threshold <= 1 {
			v.nameThreshold = threshold
		}
	}
}

func New(opts ...Option) *Verifier {
	v := &Verifier{nameThreshold: DefaultNameThreshold}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// component accumulates the weighted confidence score.
type component struct {
	weight float64
	score  float64
}

// Verify compares the document against the customer as of now.
// A missing document name is a hard error; every other problem is reported as an issue.
func (v *Verifier) Verify(req models.DocumentVerificationRequest, customer models.Customer, now time.Time) (models.DocumentVerificationResult, error) {
	data := req.DocumentData
	if strings.TrimSpace(data.Name) == "" {
		return models.DocumentVerificationResult{}, models.NewDocumentVerificationError(
			"verify_document", "document name is required", nil)
	}

	var (
		issues     []models.VerificationIssue
		components []component
	)
	add := func(code string, sev models.IssueSeverity, format string, args ...any) {
		issues = append(issues, models.VerificationIssue{Code: code, Severity: sev, Message: fmt.Sprintf(format, args...)})
	}

	if req.CustomerID != "" && req.CustomerID != customer.ID {
		add(models.IssueCustomerMismatch, models.IssueError,
			"request customer %s does not match customer record %s", req.CustomerID, customer.ID)
	}

	number := normalizeNumber(data.Number)
	switch {
	case !req.DocumentType.IsValid():
		add(models.IssueInvalidDocumentType, models.IssueError, "unsupported document type %q", req.DocumentType)
	case number == "":
		add(models.IssueNumberUnverified, models.IssueInfo, "document number could not be verified")
	case !numberFormats[req.DocumentType].MatchString(number):
		add(models.IssueInvalidDocumentNumber, models.IssueError,
			"document number %q is not a valid %s number", data.Number, req.DocumentType)
	}

	similarity := matcher.Similarity(data.Name, customer.Name)
	components = append(components, component{weight: weightName, score: similarity})
	if similarity < v.nameThreshold {
		add(models.IssueNameMismatch, models.IssueError,
			"document name %q does not match customer name %q (similarity %.2f)", data.Name, customer.Name, similarity)
	}

	switch docDOB, custDOB := strings.TrimSpace(data.DateOfBirth), strings.TrimSpace(customer.DateOfBirth); {
	case docDOB == "" || custDOB == "":
		add(models.IssueDOBUnverified, models.IssueInfo, "date of birth could not be verified")
	case sameDate(docDOB, custDOB):
		components = append(components, component{weight: weightDOB, score: 1})
	default:
		components = append(components, component{weight: weightDOB})
		add(models.IssueDOBMismatch, models.IssueError,
			"document date of birth %s does not match customer record %s", docDOB, custDOB)
	}

	if expiry := strings.TrimSpace(data.ExpiryDate); expiry == "" {
		add(models.IssueExpiryUnverified, models.IssueInfo, "expiry date could not be verified")
	} else if t, err := time.Parse(dateLayout, expiry); err != nil {
		components = append(components, component{weight: weightExpiry})
		add(models.IssueInvalidExpiryDate, models.IssueError, "expiry date %q is not formatted YYYY-MM-DD", expiry)
	} else if t.Before(startOfDay(now)) {
		components = append(components, component{weight: weightExpiry})
		add(models.IssueDocumentExpired, models.IssueError, "document expired on %s", expiry)
	} else {
		components = append(components, component{weight: weightExpiry, score: 1})
	}

	switch docNat, custNat := strings.TrimSpace(data.Nationality), strings.TrimSpace(customer.Nationality); {
	case docNat == "" || custNat == "":
		add(models.IssueNationalityUnverified, models.IssueInfo, "nationality could not be verified")
	case strings.EqualFold(docNat, custNat):
		components = append(components, component{weight: weightNationality, score: 1})
	default:
		components = append(components, component{weight: weightNationality})
		add(models.IssueNationalityMismatch, models.IssueError,
			"document nationality %s does not match customer nationality %s", docNat, custNat)
	}

	result := models.DocumentVerificationResult{
		Confidence:    confidence(components),
		ExtractedData: data,
		Issues:        issues,
		VerifiedAt:    now,
	}
	result.IsValid = len(result.Errors()) == 0
	return result, nil
}

func confidence(components []component) float64 {
	var total, weighted float64
	for _, c := range components {
		total += c.weight
		weighted += c.weight * c.score
	}
	if total == 0 {
		return 0
	}
	return min(max(weighted/total, 0), 1)
}

func normalizeNumber(number string) string {
	return strings.ToUpper(numberSeparators.Replace(strings.TrimSpace(number)))
}

// sameDate compares two dates by calendar day when both parse, and textually otherwise.
func sameDate(a, b string) bool {
	ta, errA := time.Parse(dateLayout, a)
	tb, errB := time.Parse(dateLayout, b)
	if errA != nil || errB != nil {
		return a == b
	}
	return ta.Equal(tb)
}

func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
