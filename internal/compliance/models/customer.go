package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Address is a postal address. Country is an ISO-3166 alpha-2 code.
type Address struct {
	Street     string `json:"street" yaml:"street"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state,omitempty" yaml:"state,omitempty"`
	PostalCode string `json:"postal_code" yaml:"postal_code"`
	Country    string `json:"country" yaml:"country"`
}

// Identification is the primary identity document on file for a customer.
type Identification struct {
	Type           DocumentType `json:"type"`
	Number         string       `json:"number"`
	IssuingCountry string       `json:"issuing_country"`
	ExpiryDate     string       `json:"expiry_date,omitempty"`
}

// Customer is the subject of KYC screening.
//
// Invariants:
//   - ID is non-empty
//   - DateOfBirth, when set, is formatted YYYY-MM-DD
//   - the engine never mutates a Customer
type Customer struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	DateOfBirth      string          `json:"date_of_birth,omitempty"`
	Nationality      string          `json:"nationality,omitempty"`
	Address          *Address        `json:"address,omitempty"`
	Identification   *Identification `json:"identification,omitempty"`
	AccountCreatedAt time.Time       `json:"account_created_at"`
}

// HasCompleteProfile reports whether both address and identification are on file.
func (c Customer) HasCompleteProfile() bool {
	return c.Address != nil && c.Identification != nil
}

// ResidenceCountry returns the address country, or "" when no address is on file.
func (c Customer) ResidenceCountry() string {
	if c.Address == nil {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(c.Address.Country))
}

// TransactionParty identifies one side of a transaction.
type TransactionParty struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
	Country   string `json:"country,omitempty"`
	BankID    string `json:"bank_id,omitempty"`
}

// TransactionType classifies the direction of funds.
type TransactionType string

const (
	TransactionCredit   TransactionType = "credit"
	TransactionDebit    TransactionType = "debit"
	TransactionTransfer TransactionType = "transfer"
)

// IsValid reports whether the transaction type is one of the known values.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionCredit, TransactionDebit, TransactionTransfer:
		return true
	}
	return false
}

// Transaction is a single movement of funds to be assessed.
type Transaction struct {
	ID          string           `json:"id"`
	CustomerID  string           `json:"customer_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Currency    string           `json:"currency"`
	Sender      TransactionParty `json:"sender"`
	Receiver    TransactionParty `json:"receiver"`
	Description string           `json:"description,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
	Type        TransactionType  `json:"type"`
}
