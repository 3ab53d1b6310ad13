package models

// OrderCounter backs the atomic serial sequence: one row per tenant per
// YYMM period, bumped with an upsert so concurrent intakes never collide.
type OrderCounter struct {
	TenantID string `gorm:"column:tenant_id;type:uuid;primaryKey"`
	Period   string `gorm:"column:period;primaryKey"`
	LastSeq  int    `gorm:"column:last_seq;not null"`
}
