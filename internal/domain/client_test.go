package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccountCode(t *testing.T) {
	valid := []string{"ACM01", "ACME01", "BEACON9999", "ABC22"}
	for _, code := range valid {
		c := Client{AccountCode: code}
		assert.NoError(t, c.ValidateAccountCode(), code)
	}

	invalid := []string{"", "acme01", "AC01", "ACMEACM01", "ACME1", "ACME12345", "ACME", "01ACME"}
	for _, code := range invalid {
		c := Client{AccountCode: code}
		assert.Error(t, c.ValidateAccountCode(), code)
	}
}

func TestDisplayID(t *testing.T) {
	c := Client{ID: "0123456789abcdef", AccountCode: "ACME01"}
	assert.Equal(t, "ACME01", c.DisplayID())

	c.AccountCode = ""
	assert.Equal(t, "01234567", c.DisplayID())

	short := Client{ID: "abc"}
	assert.Equal(t, "abc", short.DisplayID())
}
