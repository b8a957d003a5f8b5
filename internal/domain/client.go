package domain

import (
	"fmt"
	"regexp"
	"time"
)

var accountCodePattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Client is one customer account in the console.
type Client struct {
	ID          string
	AccountCode string
	Name        string
	Segment     string
	Owner       string // responsible CSM
	Status      ClientStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateAccountCode checks that AccountCode is non-empty and matches the
// required format: 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01).
func (c *Client) ValidateAccountCode() error {
	if c.AccountCode == "" {
		return fmt.Errorf("account code is required (use --code flag)")
	}
	if !accountCodePattern.MatchString(c.AccountCode) {
		return fmt.Errorf("account code %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01)", c.AccountCode)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers AccountCode; if empty it truncates ID to 8 characters.
func (c *Client) DisplayID() string {
	if c.AccountCode != "" {
		return c.AccountCode
	}
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
