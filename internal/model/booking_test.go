package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, ValidPaymentStatus(PaymentPending))
	assert.True(t, ValidPaymentStatus(PaymentApproved))
	assert.True(t, ValidPaymentStatus(PaymentRejected))

	assert.False(t, ValidPaymentStatus(""))
	assert.False(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus("Approved"))
}
