// Package serial mints the human-readable order identifiers, INV-YYMM-SEQ,
// monotonically increasing per tenant per month.
package serial

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/logger"
)

const prefix = "INV"

// Generator produces the next serial for a tenant. Implementations must
// never hand out the same serial twice on the atomic path.
type Generator interface {
	WithTx(tx *gorm.DB) Generator
	Next(ctx context.Context, tenantID uuid.UUID, now time.Time) (string, error)
}

type generator struct {
	db            *gorm.DB
	logg          *logger.Logger
	allowFallback bool
}

// NewGenerator builds the counter-backed generator. When allowFallback is
// set, a failed counter upsert degrades to a max-scan over existing serials;
// that path is best-effort only and can race under concurrency.
func NewGenerator(db *gorm.DB, logg *logger.Logger, allowFallback bool) Generator {
	return &generator{db: db, logg: logg, allowFallback: allowFallback}
}

func (g *generator) WithTx(tx *gorm.DB) Generator {
	if tx == nil {
		return g
	}
	return &generator{db: tx, logg: g.logg, allowFallback: g.allowFallback}
}

// Period formats the YYMM segment for the given time.
func Period(now time.Time) string {
	return now.Format("0601")
}

// Format assembles a serial from its period and sequence number.
func Format(period string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, period, seq)
}

func (g *generator) Next(ctx context.Context, tenantID uuid.UUID, now time.Time) (string, error) {
	if tenantID == uuid.Nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	period := Period(now)

	seq, err := g.nextAtomic(ctx, tenantID, period)
	if err == nil {
		return Format(period, seq), nil
	}

	if !g.allowFallback {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump order counter")
	}

	if g.logg != nil {
		g.logg.Error(ctx, "order counter unavailable, degrading to serial scan", err)
	}

	seq, scanErr := g.nextFromScan(ctx, tenantID, period)
	if scanErr != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, scanErr, "scan existing serials")
	}
	return Format(period, seq), nil
}

// nextAtomic bumps the per-tenant counter row in one statement so two
// concurrent intakes for the same tenant and month cannot observe the same
// sequence.
func (g *generator) nextAtomic(ctx context.Context, tenantID uuid.UUID, period string) (int, error) {
	var seq int
	err := g.db.WithContext(ctx).Raw(`
		INSERT INTO order_counters (tenant_id, period, last_seq)
		VALUES (?, ?, 1)
		ON CONFLICT (tenant_id, period)
		DO UPDATE SET last_seq = order_counters.last_seq + 1
		RETURNING last_seq
	`, tenantID, period).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	if seq < 1 {
		return 0, fmt.Errorf("counter returned sequence %d", seq)
	}
	return seq, nil
}

// nextFromScan takes max(existing)+1 over the month's serials. Two callers
// racing here can both read the same maximum; it exists only for
// availability degradation.
func (g *generator) nextFromScan(ctx context.Context, tenantID uuid.UUID, period string) (int, error) {
	var serials []string
	like := fmt.Sprintf("%s-%s-%%", prefix, period)
	err := g.db.WithContext(ctx).
		Table("orders").
		Where("tenant_id = ? AND serial LIKE ?", tenantID, like).
		Pluck("serial", &serials).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, serial := range serials {
		if seq, ok := parseSeq(serial); ok && seq > max {
			max = seq
		}
	}
	return max + 1, nil
}

func parseSeq(serial string) (int, bool) {
	idx := strings.LastIndex(serial, "-")
	if idx < 0 || idx+1 >= len(serial) {
		return 0, false
	}
	seq, err := strconv.Atoi(serial[idx+1:])
	if err != nil {
		return 0, false
	}
	return seq, true
}
