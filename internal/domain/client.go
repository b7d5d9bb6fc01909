package domain

import "time"

// ClientStatus enumerates relationship states with a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientProspect ClientStatus = "prospect"
)

// Client is a person or company represented by the firm.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	Company   string
	Notes     string
	Status    ClientStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name.
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
