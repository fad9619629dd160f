package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dahe-motor/piecerate/models"
	testingutil "github.com/dahe-motor/piecerate/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := NewQuotaRepository(testDB.DB)

		require.NoError(t, fixtures.CreateTestDictionary("10-A", "C1", "S1", "P1"))

		q1, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "3.50",
			testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.June, 30))
		require.NoError(t, err)
		q2, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "4.00",
			testingutil.Date(2025, time.July, 1), testingutil.Date(2025, time.December, 31))
		require.NoError(t, err)
		// Combination whose dictionary entries are missing on purpose.
		q3, err := fixtures.CreateTestQuota("99-Z", "C9", "S9", "P9", "1.00",
			testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.December, 31))
		require.NoError(t, err)

		t.Run("ListAllDetailedJoinsNames", func(t *testing.T) {
			rows, err := repo.ListAllDetailed(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, q1.ID, rows[0].ID)
			assert.Equal(t, "Model 10-A", rows[0].ModelName)
			assert.Equal(t, "Section C1", rows[0].Cat1Name)
			assert.Equal(t, "Stage S1", rows[0].Cat2Name)
			assert.Equal(t, "Process P1", rows[0].ProcessName)
		})

		t.Run("MissingDictionaryYieldsEmptyNames", func(t *testing.T) {
			row, err := repo.GetByIDDetailed(ctx, q3.ID)
			require.NoError(t, err)
			require.NotNil(t, row)
			assert.Equal(t, "", row.ModelName)
			assert.Equal(t, "", row.ProcessName)
		})

		t.Run("GetByIDDetailedMissing", func(t *testing.T) {
			row, err := repo.GetByIDDetailed(ctx, 9999)
			require.NoError(t, err)
			assert.Nil(t, row)
		})

		t.Run("ListByCat1Detailed", func(t *testing.T) {
			rows, err := repo.ListByCat1Detailed(ctx, "C1")
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("ListByKeyDetailed", func(t *testing.T) {
			rows, err := repo.ListByKeyDetailed(ctx, q1.Combination())
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, q1.ID, rows[0].ID)
			assert.Equal(t, q2.ID, rows[1].ID)
		})

		t.Run("ByFilterValidOn", func(t *testing.T) {
			validOn := testingutil.Date(2025, time.March, 1)
			quotas, err := repo.ByFilter(ctx, models.QuotaFilter{ValidOn: &validOn}, "", 0, 0)
			require.NoError(t, err)
			assert.Len(t, quotas, 2)
		})

		t.Run("DeleteReportsAffectedRow", func(t *testing.T) {
			deleted, err := repo.Delete(ctx, q3.ID)
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = repo.Delete(ctx, q3.ID)
			require.NoError(t, err)
			assert.False(t, deleted)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestWageRecordRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)
		repo := NewWageRecordRepository(testDB.DB)

		require.NoError(t, fixtures.CreateTestDictionary("10-A", "C1", "S1", "P1"))
		_, err := fixtures.CreateTestWorker("W001", "Zhang San")
		require.NoError(t, err)
		_, err = fixtures.CreateTestWorker("W002", "Li Si")
		require.NoError(t, err)

		quota, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "3.50",
			testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.December, 31))
		require.NoError(t, err)

		_, err = fixtures.CreateTestWageRecord("W001", quota.ID, "10", "3.50", testingutil.Date(2025, time.March, 5))
		require.NoError(t, err)
		_, err = fixtures.CreateTestWageRecord("W001", quota.ID, "4", "3.50", testingutil.Date(2025, time.March, 20))
		require.NoError(t, err)
		_, err = fixtures.CreateTestWageRecord("W002", quota.ID, "6", "3.50", testingutil.Date(2025, time.April, 2))
		require.NoError(t, err)

		t.Run("ListDetailedNewestFirst", func(t *testing.T) {
			rows, err := repo.ListDetailed(ctx, models.WageRecordFilter{}, 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, "W002", rows[0].WorkerCode)
			assert.Equal(t, "Li Si", rows[0].WorkerName)
			assert.Equal(t, "Model 10-A", rows[0].ModelName)
		})

		t.Run("ListDetailedByWorker", func(t *testing.T) {
			worker := "W001"
			rows, err := repo.ListDetailed(ctx, models.WageRecordFilter{WorkerCode: &worker}, 0, 0)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("ListDetailedByMonth", func(t *testing.T) {
			month := "2025-03"
			rows, err := repo.ListDetailed(ctx, models.WageRecordFilter{Month: &month}, 0, 0)
			require.NoError(t, err)
			assert.Len(t, rows, 2)
		})

		t.Run("SummaryByMonth", func(t *testing.T) {
			start := testingutil.Date(2025, time.March, 1)
			totals, err := repo.SummaryByMonth(ctx, start, start.AddDate(0, 1, 0))
			require.NoError(t, err)
			require.Len(t, totals, 1)
			assert.Equal(t, "W001", totals[0].WorkerCode)
			assert.Equal(t, int64(2), totals[0].RecordCount)
			assert.Equal(t, "49.00", totals[0].TotalAmount.StringFixed(2))
		})

		t.Run("WorkloadByMonthGroupsByProcess", func(t *testing.T) {
			// Second combination on a process with no dictionary entry.
			quota2, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P2", "2.00",
				testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.December, 31))
			require.NoError(t, err)
			_, err = fixtures.CreateTestWageRecord("W002", quota2.ID, "5", "2.00", testingutil.Date(2025, time.March, 8))
			require.NoError(t, err)

			start := testingutil.Date(2025, time.March, 1)
			totals, err := repo.WorkloadByMonth(ctx, start, start.AddDate(0, 1, 0))
			require.NoError(t, err)
			require.Len(t, totals, 2)

			assert.Equal(t, "P1", totals[0].ProcessCode)
			assert.Equal(t, "Process P1", totals[0].ProcessName)
			assert.Equal(t, "14.00", totals[0].TotalQuantity.StringFixed(2))
			assert.Equal(t, "49.00", totals[0].TotalAmount.StringFixed(2))

			assert.Equal(t, "P2", totals[1].ProcessCode)
			assert.Equal(t, "", totals[1].ProcessName)
			assert.Equal(t, "5.00", totals[1].TotalQuantity.StringFixed(2))
			assert.Equal(t, "10.00", totals[1].TotalAmount.StringFixed(2))
		})

		t.Run("WithTransactionCommits", func(t *testing.T) {
			record := &models.WageRecord{
				WorkerCode: "W001",
				QuotaID:    quota.ID,
				Quantity:   decimal.RequireFromString("1"),
				UnitPrice:  decimal.RequireFromString("3.50"),
				Amount:     decimal.RequireFromString("3.50"),
				RecordDate: testingutil.Date(2025, time.May, 1),
				BatchID:    uuid.New(),
			}
			err := repo.WithTransaction(ctx, func(txCtx context.Context) error {
				return repo.Save(txCtx, record)
			})
			require.NoError(t, err)

			saved, err := repo.ByID(ctx, record.ID)
			require.NoError(t, err)
			require.NotNil(t, saved)
			assert.Equal(t, "W001", saved.WorkerCode)
		})

		t.Run("WithTransactionRollsBackOnError", func(t *testing.T) {
			record := &models.WageRecord{
				WorkerCode: "W001",
				QuotaID:    quota.ID,
				Quantity:   decimal.RequireFromString("1"),
				UnitPrice:  decimal.RequireFromString("3.50"),
				Amount:     decimal.RequireFromString("3.50"),
				RecordDate: testingutil.Date(2025, time.May, 2),
				BatchID:    uuid.New(),
			}
			abort := errors.New("abort after write")
			err := repo.WithTransaction(ctx, func(txCtx context.Context) error {
				if err := repo.Save(txCtx, record); err != nil {
					return err
				}
				return abort
			})
			require.ErrorIs(t, err, abort)

			// The insert inside the transaction must not survive.
			rolledBack, err := repo.ByID(ctx, record.ID)
			require.NoError(t, err)
			assert.Nil(t, rolledBack)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestWorkerRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		repo := NewWorkerRepository(testDB.DB)

		worker := &models.Worker{WorkerCode: "W100", Name: "Wang Wu"}
		require.NoError(t, repo.Save(ctx, worker))

		t.Run("ByCode", func(t *testing.T) {
			found, err := repo.ByCode(ctx, "W100")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Wang Wu", found.Name)

			missing, err := repo.ByCode(ctx, "W999")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("Update", func(t *testing.T) {
			worker.Name = "Wang Wu Jr"
			require.NoError(t, repo.Update(ctx, worker))

			found, err := repo.ByCode(ctx, "W100")
			require.NoError(t, err)
			assert.Equal(t, "Wang Wu Jr", found.Name)
		})

		t.Run("Delete", func(t *testing.T) {
			deleted, err := repo.Delete(ctx, "W100")
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = repo.Delete(ctx, "W100")
			require.NoError(t, err)
			assert.False(t, deleted)
		})

		return nil
	})
	require.NoError(t, err)
}
