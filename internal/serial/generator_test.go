package serial

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSerialTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:serial_%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	counters := `
CREATE TABLE IF NOT EXISTS order_counters (
  tenant_id TEXT NOT NULL,
  period TEXT NOT NULL,
  last_seq INTEGER NOT NULL,
  PRIMARY KEY (tenant_id, period)
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  serial TEXT NOT NULL
);`
	require.NoError(t, db.Exec(counters).Error)
	require.NoError(t, db.Exec(orders).Error)
	return db
}

func TestNextIsMonotonicWithoutGaps(t *testing.T) {
	db := setupSerialTestDB(t)
	gen := NewGenerator(db, nil, false)

	tenantID := uuid.New()
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		serial, err := gen.Next(context.Background(), tenantID, now)
		require.NoError(t, err)
		assert.Equal(t, Format("2603", i), serial)
	}
}

func TestNextScopedPerTenantAndPeriod(t *testing.T) {
	db := setupSerialTestDB(t)
	gen := NewGenerator(db, nil, false)

	tenantA := uuid.New()
	tenantB := uuid.New()
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	first, err := gen.Next(context.Background(), tenantA, march)
	require.NoError(t, err)
	assert.Equal(t, "INV-2603-0001", first)

	other, err := gen.Next(context.Background(), tenantB, march)
	require.NoError(t, err)
	assert.Equal(t, "INV-2603-0001", other, "tenants own independent sequences")

	rollover, err := gen.Next(context.Background(), tenantA, april)
	require.NoError(t, err)
	assert.Equal(t, "INV-2604-0001", rollover, "sequence resets each month")
}

func TestNextRejectsNilTenant(t *testing.T) {
	db := setupSerialTestDB(t)
	gen := NewGenerator(db, nil, false)

	_, err := gen.Next(context.Background(), uuid.Nil, time.Now())
	require.Error(t, err)
}

func TestFallbackScanResumesFromExistingSerials(t *testing.T) {
	db := setupSerialTestDB(t)

	tenantID := uuid.New()
	now := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	for _, serial := range []string{"INV-2603-0001", "INV-2603-0007", "INV-2602-0042"} {
		require.NoError(t, db.Exec(
			`INSERT INTO orders (id, tenant_id, serial) VALUES (?, ?, ?)`,
			uuid.NewString(), tenantID, serial,
		).Error)
	}

	// Drop the counter table to force the degradation path.
	require.NoError(t, db.Exec(`DROP TABLE order_counters`).Error)

	gen := NewGenerator(db, nil, true)
	serial, err := gen.Next(context.Background(), tenantID, now)
	require.NoError(t, err)
	assert.Equal(t, "INV-2603-0008", serial, "fallback continues from the month's maximum")
}

func TestNoFallbackSurfacesCounterFailure(t *testing.T) {
	db := setupSerialTestDB(t)
	require.NoError(t, db.Exec(`DROP TABLE order_counters`).Error)

	gen := NewGenerator(db, nil, false)
	_, err := gen.Next(context.Background(), uuid.New(), time.Now())
	require.Error(t, err)
}

func TestParseSeq(t *testing.T) {
	tests := []struct {
		serial string
		seq    int
		ok     bool
	}{
		{serial: "INV-2603-0008", seq: 8, ok: true},
		{serial: "INV-2603-0100", seq: 100, ok: true},
		{serial: "garbage", ok: false},
		{serial: "INV-2603-", ok: false},
	}
	for _, tt := range tests {
		seq, ok := parseSeq(tt.serial)
		assert.Equal(t, tt.ok, ok, tt.serial)
		if tt.ok {
			assert.Equal(t, tt.seq, seq, tt.serial)
		}
	}
}
