package billing

import "time"

// BillingStatement is the persisted result of allocating one billing
// period's costs to one tenant. Statements are immutable once created;
// regenerating always produces a new row.
type BillingStatement struct {
	ID              int64     `json:"id"`
	BillingPeriodID int64     `json:"billing_period_id"`
	TenantID        int64     `json:"tenant_id"`
	TotalAmount     float64   `json:"total_amount"`
	GeneratedAt     time.Time `json:"generated_at"`
	Document        string    `json:"html_content,omitempty"`
}
