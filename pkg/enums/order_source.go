package enums

// OrderSource records which ingestion path created an order.
type OrderSource string

const (
	OrderSourceDashboard OrderSource = "dashboard"
	OrderSourceWebhook   OrderSource = "webhook"
)

// IsValid reports whether the value is a known OrderSource.
func (s OrderSource) IsValid() bool {
	return s == OrderSourceDashboard || s == OrderSourceWebhook
}
