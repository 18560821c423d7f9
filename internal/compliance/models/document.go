package models

import "time"

// DocumentType enumerates the identity documents the verifier accepts.
type DocumentType string

const (
	DocumentPassport       DocumentType = "passport"
	DocumentNationalID     DocumentType = "national_id"
	DocumentDriversLicense DocumentType = "drivers_license"
)

// IsValid reports whether the document type is supported.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentPassport, DocumentNationalID, DocumentDriversLicense:
		return true
	}
	return false
}

// DocumentData holds fields already extracted from a document image.
type DocumentData struct {
	Number      string `json:"number"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
	Nationality string `json:"nationality,omitempty"`
	ExpiryDate  string `json:"expiry_date,omitempty"`
}

// DocumentVerificationRequest asks for a document to be checked against a customer record.
type DocumentVerificationRequest struct {
	CustomerID   string       `json:"customer_id"`
	DocumentType DocumentType `json:"document_type"`
	DocumentData DocumentData `json:"document_data"`
}

// IssueSeverity separates blocking issues from informational notes.
type IssueSeverity string

const (
	IssueInfo  IssueSeverity = "info"
	IssueError IssueSeverity = "error"
)

// Issue codes emitted by the document verifier.
const (
	IssueNameMismatch          = "name_mismatch"
	IssueDOBMismatch           = "dob_mismatch"
	IssueDocumentExpired       = "document_expired"
	IssueNationalityMismatch   = "nationality_mismatch"
	IssueInvalidDocumentType   = "invalid_document_type"
	IssueInvalidDocumentNumber = "invalid_document_number"
	IssueCustomerMismatch      = "customer_mismatch"
	IssueInvalidExpiryDate     = "invalid_expiry_date"
	IssueNumberUnverified      = "document_number_unverified"
	IssueDOBUnverified         = "date_of_birth_unverified"
	IssueExpiryUnverified      = "expiry_date_unverified"
	IssueNationalityUnverified = "nationality_unverified"
)

// VerificationIssue is a single finding from document verification.
type VerificationIssue struct {
	Code     string        `json:"code"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

// DocumentVerificationResult reports whether a document supports a customer's identity.
//
// Invariants:
//   - IsValid is true iff no issue has error severity
//   - Confidence is within [0, 1]
type DocumentVerificationResult struct {
	IsValid       bool                `json:"is_valid"`
	Confidence    float64             `json:"confidence"`
	ExtractedData DocumentData        `json:"extracted_data"`
	Issues        []VerificationIssue `json:"issues"`
	VerifiedAt    time.Time           `json:"verified_at"`
}

// Errors returns only the blocking issues.
func (r DocumentVerificationResult) Errors() []VerificationIssue {
	var out []VerificationIssue
	for _, issue := range r.Issues {
		if issue.Severity == IssueError {
			out = append(out, issue)
		}
	}
	return out
}
