package entity

import (
	"time"
)

const (
	StatusOpen     = "OPEN"
	StatusCallback = "CALLBACK"
	StatusClosed   = "CLOSED"
	StatusSold     = "SOLD"
)

type Lead struct {
	ID          string     `json:"id"`
	BranchID    string     `json:"branch_id"`
	BranchName  string     `json:"branch_name"`
	AgentID     string     `json:"agent_id"`
	AgentName   string     `json:"agent_name"`
	Status      string     `json:"status"` // OPEN, CALLBACK, CLOSED, SOLD
	Product     string     `json:"product,omitempty"`
	Segment     string     `json:"segment,omitempty"`
	Campaign    string     `json:"campaign,omitempty"`
	Revenue     float64    `json:"revenue"`
	CreatedAt   time.Time  `json:"created_at"`
	ContactedAt *time.Time `json:"contacted_at,omitempty"`
	ConvertedAt *time.Time `json:"converted_at,omitempty"`
}

func (l *Lead) IsSold() bool {
	return l.Status == StatusSold
}

func (l *Lead) IsContacted() bool {
	return l.ContactedAt != nil
}
