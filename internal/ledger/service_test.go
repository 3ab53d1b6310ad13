package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omarkhalil/framecraft-backend/pkg/enums"
	pkgerrors "github.com/omarkhalil/framecraft-backend/pkg/errors"
	"github.com/omarkhalil/framecraft-backend/pkg/pagination"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:ledger_%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	transactions := `
CREATE TABLE IF NOT EXISTS transactions (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  type TEXT NOT NULL,
  amount NUMERIC NOT NULL,
  description TEXT NOT NULL,
  order_serial TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(transactions).Error)
	return db
}

func newLedgerService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func record(t *testing.T, svc Service, tenantID uuid.UUID, txType enums.TransactionType, amount int64, serial string) {
	t.Helper()
	_, err := svc.Record(context.Background(), RecordTransactionInput{
		TenantID:    tenantID,
		Type:        txType,
		Amount:      decimal.NewFromInt(amount),
		Description: "test entry",
		OrderSerial: serial,
	})
	require.NoError(t, err)
}

func TestRecordAndBalance(t *testing.T) {
	db := setupLedgerTestDB(t)
	svc := newLedgerService(t, db)
	tenantID := uuid.New()

	record(t, svc, tenantID, enums.TransactionTypeIncome, 500, "INV-2608-0001")
	record(t, svc, tenantID, enums.TransactionTypeExpense, 120, "")
	record(t, svc, tenantID, enums.TransactionTypeIncome, 75, "INV-2608-0002")

	balance, err := svc.Balance(context.Background(), tenantID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(455)), "balance was %s", balance)
}

func TestBalanceIsOrderIndependent(t *testing.T) {
	amounts := []struct {
		txType enums.TransactionType
		amount int64
	}{
		{enums.TransactionTypeIncome, 300},
		{enums.TransactionTypeExpense, 50},
		{enums.TransactionTypeIncome, 20},
		{enums.TransactionTypeExpense, 170},
	}
	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
	}

	for _, perm := range permutations {
		db := setupLedgerTestDB(t)
		svc := newLedgerService(t, db)
		tenantID := uuid.New()

		for _, idx := range perm {
			record(t, svc, tenantID, amounts[idx].txType, amounts[idx].amount, "")
		}

		balance, err := svc.Balance(context.Background(), tenantID)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)), "permutation %v gave %s", perm, balance)
	}
}

func TestBalanceScopedPerTenant(t *testing.T) {
	db := setupLedgerTestDB(t)
	svc := newLedgerService(t, db)

	tenantA := uuid.New()
	tenantB := uuid.New()
	record(t, svc, tenantA, enums.TransactionTypeIncome, 100, "")
	record(t, svc, tenantB, enums.TransactionTypeIncome, 900, "")

	balance, err := svc.Balance(context.Background(), tenantA)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)))
}

func TestBalanceEmptyLedgerIsZero(t *testing.T) {
	db := setupLedgerTestDB(t)
	svc := newLedgerService(t, db)

	balance, err := svc.Balance(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestRecordRejectsBadInput(t *testing.T) {
	db := setupLedgerTestDB(t)
	svc := newLedgerService(t, db)
	tenantID := uuid.New()

	tests := []struct {
		name  string
		input RecordTransactionInput
		code  pkgerrors.Code
	}{
		{
			name:  "missing tenant",
			input: RecordTransactionInput{Type: enums.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "x"},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "unknown type",
			input: RecordTransactionInput{TenantID: tenantID, Type: "transfer", Amount: decimal.NewFromInt(10), Description: "x"},
			code:  pkgerrors.CodeValidation,
		},
		{
			name:  "zero amount",
			input: RecordTransactionInput{TenantID: tenantID, Type: enums.TransactionTypeIncome, Amount: decimal.Zero, Description: "x"},
			code:  pkgerrors.CodeInvalidAmount,
		},
		{
			name:  "negative amount",
			input: RecordTransactionInput{TenantID: tenantID, Type: enums.TransactionTypeExpense, Amount: decimal.NewFromInt(-5), Description: "x"},
			code:  pkgerrors.CodeInvalidAmount,
		},
		{
			name:  "blank description",
			input: RecordTransactionInput{TenantID: tenantID, Type: enums.TransactionTypeIncome, Amount: decimal.NewFromInt(10), Description: "  "},
			code:  pkgerrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, pkgerrors.CodeOf(err))
		})
	}

	balance, err := svc.Balance(context.Background(), tenantID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "rejected entries must not touch the ledger")
}

func TestPurgeByOrderSerial(t *testing.T) {
	db := setupLedgerTestDB(t)
	svc := newLedgerService(t, db)
	tenantID := uuid.New()

	record(t, svc, tenantID, enums.TransactionTypeIncome, 200, "INV-2608-0001")
	record(t, svc, tenantID, enums.TransactionTypeIncome, 300, "INV-2608-0002")
	record(t, svc, tenantID, enums.TransactionTypeExpense, 40, "")

	require.NoError(t, svc.PurgeByOrderSerial(context.Background(), db, tenantID, "INV-2608-0001"))

	balance, err := svc.Balance(context.Background(), tenantID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(260)), "balance was %s", balance)

	// Blank serial purges nothing rather than matching unlinked rows.
	require.NoError(t, svc.PurgeByOrderSerial(context.Background(), db, tenantID, ""))
	balance, err = svc.Balance(context.Background(), tenantID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(260)))
}

func TestListPagination(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	svc := newLedgerService(t, db)
	tenantID := uuid.New()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		txn := RecordTransactionInput{
			TenantID:    tenantID,
			Type:        enums.TransactionTypeIncome,
			Amount:      decimal.NewFromInt(int64(10 * (i + 1))),
			Description: fmt.Sprintf("entry %d", i+1),
		}
		created, err := svc.Record(context.Background(), txn)
		require.NoError(t, err)
		// Spread timestamps so the cursor ordering is deterministic.
		require.NoError(t, db.Model(created).Update("created_at", now.Add(time.Duration(i)*time.Minute)).Error)
	}

	first, err := repo.List(context.Background(), tenantID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Transactions, 2)
	assert.Equal(t, "entry 3", first.Transactions[0].Description)
	require.NotNil(t, first.NextCursor)

	second, err := repo.List(context.Background(), tenantID, pagination.Params{Limit: 2, Cursor: *first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Transactions, 1)
	assert.Equal(t, "entry 1", second.Transactions[0].Description)
	assert.Nil(t, second.NextCursor)
}
