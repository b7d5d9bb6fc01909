package domain

import "time"

// CaseStatus enumerates matter lifecycle states.
type CaseStatus string

const (
	CaseOpen    CaseStatus = "open"
	CasePending CaseStatus = "pending"
	CaseClosed  CaseStatus = "closed"
	CaseWon     CaseStatus = "won"
	CaseLost    CaseStatus = "lost"
)

// LegalCase is a matter handled for a client.
type LegalCase struct {
	ID           string
	CaseNumber   string
	Title        string
	Description  string
	ClientID     string
	AttorneyID   *string
	PracticeArea string
	Status       CaseStatus
	OpenedAt     time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
