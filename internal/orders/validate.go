package orders

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
)

// ValidateCreateOrder checks an order payload for completeness before any
// write occurs. It is side-effect-free and deterministic: violations are
// collected in field order, the first one becomes the public message and
// the full list travels in the error details.
func ValidateCreateOrder(input CreateOrderInput) error {
	var violations error

	if strings.TrimSpace(input.CustomerName) == "" {
		violations = multierr.Append(violations, errors.New("customer name is required"))
	}
	if strings.TrimSpace(input.Phone) == "" {
		violations = multierr.Append(violations, errors.New("phone is required"))
	}
	if len(input.Items) == 0 {
		violations = multierr.Append(violations, errors.New("at least one item is required"))
	}

	for i, item := range input.Items {
		if strings.TrimSpace(item.ProductType) == "" {
			violations = multierr.Append(violations, fmt.Errorf("item %d: product type is required", i+1))
		}
		if strings.TrimSpace(item.Size) == "" {
			violations = multierr.Append(violations, fmt.Errorf("item %d: size is required", i+1))
		}
		if item.Quantity < 1 {
			violations = multierr.Append(violations, fmt.Errorf("item %d: quantity must be at least 1", i+1))
		}
		if item.ItemDiscount.GreaterThan(item.Price) {
			violations = multierr.Append(violations, fmt.Errorf("item %d: discount cannot exceed price", i+1))
		}
	}

	if violations == nil {
		return nil
	}

	all := multierr.Errors(violations)
	details := make([]string, 0, len(all))
	for _, v := range all {
		details = append(details, v.Error())
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, violations, all[0].Error()).WithDetails(details)
}
