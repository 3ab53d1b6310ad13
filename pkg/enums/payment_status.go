package enums

import "fmt"

// CustomerPaymentStatus tracks how much of an order a customer has settled.
type CustomerPaymentStatus string

const (
	CustomerPaymentStatusPaid    CustomerPaymentStatus = "Paid"
	CustomerPaymentStatusPartial CustomerPaymentStatus = "Partial"
	CustomerPaymentStatusUnpaid  CustomerPaymentStatus = "Unpaid"
)

var validCustomerPaymentStatuses = []CustomerPaymentStatus{
	CustomerPaymentStatusPaid,
	CustomerPaymentStatusPartial,
	CustomerPaymentStatusUnpaid,
}

// CountsTowardBalance reports whether the payment reduces the order's
// remaining amount.
func (s CustomerPaymentStatus) CountsTowardBalance() bool {
	return s == CustomerPaymentStatusPaid || s == CustomerPaymentStatusPartial
}

// IsValid reports whether the value is a known CustomerPaymentStatus.
func (s CustomerPaymentStatus) IsValid() bool {
	for _, candidate := range validCustomerPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCustomerPaymentStatus converts raw input into a CustomerPaymentStatus.
func ParseCustomerPaymentStatus(value string) (CustomerPaymentStatus, error) {
	for _, candidate := range validCustomerPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer payment status %q", value)
}

// WorkshopPaymentStatus tracks what the tenant owes the print workshop.
type WorkshopPaymentStatus string

const (
	WorkshopPaymentStatusPaid WorkshopPaymentStatus = "Paid"
	WorkshopPaymentStatusDue  WorkshopPaymentStatus = "Due"
)

var validWorkshopPaymentStatuses = []WorkshopPaymentStatus{
	WorkshopPaymentStatusPaid,
	WorkshopPaymentStatusDue,
}

// IsValid reports whether the value is a known WorkshopPaymentStatus.
func (s WorkshopPaymentStatus) IsValid() bool {
	for _, candidate := range validWorkshopPaymentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseWorkshopPaymentStatus converts raw input into a WorkshopPaymentStatus.
func ParseWorkshopPaymentStatus(value string) (WorkshopPaymentStatus, error) {
	for _, candidate := range validWorkshopPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid workshop payment status %q", value)
}
