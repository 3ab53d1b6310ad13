package enums

import "fmt"

// TransactionType maps to the transaction_type enum in Postgres. Income
// increases the tenant balance, expense decreases it.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
}

// IsValid reports whether the value matches the canonical transaction enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
