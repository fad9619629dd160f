package businessflow

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dahe-motor/piecerate/app/dto"
	"github.com/dahe-motor/piecerate/config"
	"github.com/dahe-motor/piecerate/models"
	"github.com/dahe-motor/piecerate/repository"
	testingutil "github.com/dahe-motor/piecerate/testing"
	"github.com/dahe-motor/piecerate/utils"
)

func TestQuotaResolutionFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)
		flow := NewQuotaResolutionFlow(repository.NewQuotaRepository(testDB.DB))

		require.NoError(t, fixtures.CreateTestDictionary("10-A", "C1", "S1", "P1"))
		q1, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "3.50",
			testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.June, 30))
		require.NoError(t, err)
		q2, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "4.00",
			testingutil.Date(2025, time.July, 1), testingutil.Date(2025, time.December, 31))
		require.NoError(t, err)

		t.Run("ResolveByIDFound", func(t *testing.T) {
			resp, err := flow.Resolve(ctx, &dto.ResolveQuotaRequest{
				QuotaID:    &q1.ID,
				RecordDate: "2025-03-15",
			})
			require.NoError(t, err)
			assert.Equal(t, "found", resp.Outcome)
			require.NotNil(t, resp.Quota)
			assert.Equal(t, q1.ID, resp.Quota.QuotaID)
			assert.Equal(t, "Model 10-A", resp.Quota.ModelName)
		})

		t.Run("ResolveByIDObsoleteSuggestsReplacement", func(t *testing.T) {
			resp, err := flow.Resolve(ctx, &dto.ResolveQuotaRequest{
				QuotaID:    &q1.ID,
				RecordDate: "2025-08-01",
			})
			require.NoError(t, err)
			assert.Equal(t, "obsolete", resp.Outcome)
			require.NotNil(t, resp.Replacement)
			assert.Equal(t, q2.ID, resp.Replacement.QuotaID)
		})

		t.Run("ResolveByCombination", func(t *testing.T) {
			resp, err := flow.Resolve(ctx, &dto.ResolveQuotaRequest{
				ModelCode:   utils.ToPtr("10-A"),
				Cat1Code:    utils.ToPtr("C1"),
				Cat2Code:    utils.ToPtr("S1"),
				ProcessCode: utils.ToPtr("P1"),
				RecordDate:  "2025-08-01",
			})
			require.NoError(t, err)
			assert.Equal(t, "found", resp.Outcome)
			assert.Equal(t, q2.ID, resp.Quota.QuotaID)
		})

		t.Run("PartialCombinationRejected", func(t *testing.T) {
			_, err := flow.Resolve(ctx, &dto.ResolveQuotaRequest{
				ModelCode:  utils.ToPtr("10-A"),
				RecordDate: "2025-08-01",
			})
			require.Error(t, err)
			assert.Equal(t, "RESOLVE_KEY_REQUIRED", ErrorCode(err))
			assert.True(t, IsInvalidInput(err))
		})

		t.Run("MalformedDateRejected", func(t *testing.T) {
			_, err := flow.Resolve(ctx, &dto.ResolveQuotaRequest{
				QuotaID:    &q1.ID,
				RecordDate: "15/03/2025",
			})
			require.Error(t, err)
			assert.Equal(t, "RESOLVE_RECORD_DATE_INVALID", ErrorCode(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestWageRecordFlowCreateBatch(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)

		quotaRepo := repository.NewQuotaRepository(testDB.DB)
		wageRepo := repository.NewWageRecordRepository(testDB.DB)
		workerRepo := repository.NewWorkerRepository(testDB.DB)
		flow := NewWageRecordFlow(wageRepo, workerRepo, quotaRepo)

		require.NoError(t, fixtures.CreateTestDictionary("10-A", "C1", "S1", "P1"))
		_, err := fixtures.CreateTestWorker("W001", "Zhang San")
		require.NoError(t, err)

		valid, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P1", "3.50",
			testingutil.Date(2025, time.January, 1), testingutil.Date(2025, time.December, 31))
		require.NoError(t, err)
		lapsed, err := fixtures.CreateTestQuota("10-A", "C1", "S1", "P2", "2.00",
			testingutil.Date(2024, time.January, 1), testingutil.Date(2024, time.December, 31))
		require.NoError(t, err)

		t.Run("MixedBatchPartiallySucceeds", func(t *testing.T) {
			resp, err := flow.CreateBatch(ctx, &dto.CreateBatchRecordsRequest{
				WorkerCode: "W001",
				QuotaIDs:   []uint{valid.ID, lapsed.ID, 9999},
				Quantity:   decimal.RequireFromString("8"),
				RecordDate: "2025-03-10",
			})
			require.NoError(t, err)
			assert.Equal(t, 1, resp.CreatedCount)
			assert.Equal(t, 2, resp.ErrorCount)
			assert.NotEmpty(t, resp.BatchID)

			require.Len(t, resp.Records, 1)
			assert.Equal(t, valid.ID, resp.Records[0].QuotaID)
			assert.Equal(t, "28.00", resp.Records[0].Amount.StringFixed(2))

			outcomes := map[uint]string{}
			for _, e := range resp.Errors {
				outcomes[e.QuotaID] = e.Outcome
			}
			assert.Equal(t, "obsolete", outcomes[lapsed.ID])
			assert.Equal(t, "not_found", outcomes[9999])
		})

		t.Run("UnknownWorkerRejectsWholeBatch", func(t *testing.T) {
			_, err := flow.CreateBatch(ctx, &dto.CreateBatchRecordsRequest{
				WorkerCode: "W999",
				QuotaIDs:   []uint{valid.ID},
				Quantity:   decimal.RequireFromString("1"),
				RecordDate: "2025-03-10",
			})
			require.Error(t, err)
			assert.Equal(t, "BATCH_WORKER_NOT_FOUND", ErrorCode(err))
			assert.True(t, IsNotFound(err))
		})

		t.Run("NegativeQuantityRejected", func(t *testing.T) {
			_, err := flow.CreateBatch(ctx, &dto.CreateBatchRecordsRequest{
				WorkerCode: "W001",
				QuotaIDs:   []uint{valid.ID},
				Quantity:   decimal.RequireFromString("-1"),
				RecordDate: "2025-03-10",
			})
			require.Error(t, err)
			assert.Equal(t, "BATCH_QUANTITY_NEGATIVE", ErrorCode(err))
		})

		t.Run("UpdateReResolvesAndResnapshots", func(t *testing.T) {
			created, err := flow.CreateBatch(ctx, &dto.CreateBatchRecordsRequest{
				WorkerCode: "W001",
				QuotaIDs:   []uint{valid.ID},
				Quantity:   decimal.RequireFromString("2"),
				RecordDate: "2025-03-10",
			})
			require.NoError(t, err)
			require.Len(t, created.Records, 1)
			recordID := created.Records[0].RecordID

			resp, err := flow.Update(ctx, recordID, &dto.UpdateWageRecordRequest{
				Quantity: utils.ToPtr(decimal.RequireFromString("5")),
			})
			require.NoError(t, err)
			assert.Equal(t, "17.50", resp.Record.Amount.StringFixed(2))

			// Moving the record into the lapsed quota's dead window
			// must fail, leaving the record untouched.
			_, err = flow.Update(ctx, recordID, &dto.UpdateWageRecordRequest{
				QuotaID: &lapsed.ID,
			})
			require.Error(t, err)
			assert.Equal(t, "RECORD_QUOTA_UNRESOLVED", ErrorCode(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestReportFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)

		wageRepo := repository.NewWageRecordRepository(testDB.DB)
		workerRepo := repository.NewWorkerRepository(testDB.DB)
		statsRepo := repository.NewStatsRepository(testDB.DB)
		flow := NewReportFlow(wageRepo, workerRepo, statsRepo)

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
		_, err = fixtures.CreateTestWageRecord("W002", quota.ID, "6", "3.50", testingutil.Date(2025, time.March, 12))
		require.NoError(t, err)
		// Outside the month, excluded everywhere.
		_, err = fixtures.CreateTestWageRecord("W002", quota.ID, "100", "3.50", testingutil.Date(2025, time.April, 1))
		require.NoError(t, err)

		t.Run("WorkerMonthly", func(t *testing.T) {
			resp, err := flow.WorkerMonthly(ctx, "W001", "2025-03")
			require.NoError(t, err)
			assert.Equal(t, "Zhang San", resp.WorkerName)
			assert.Len(t, resp.Items, 2)
			assert.Equal(t, "49.00", resp.TotalAmount.StringFixed(2))
		})

		t.Run("WorkerMonthlyUnknownWorker", func(t *testing.T) {
			_, err := flow.WorkerMonthly(ctx, "W999", "2025-03")
			require.Error(t, err)
			assert.Equal(t, "REPORT_WORKER_NOT_FOUND", ErrorCode(err))
		})

		t.Run("SalarySummary", func(t *testing.T) {
			resp, err := flow.SalarySummary(ctx, "2025-03")
			require.NoError(t, err)
			require.Len(t, resp.Items, 2)
			assert.Equal(t, "W001", resp.Items[0].WorkerCode)
			assert.Equal(t, int64(2), resp.Items[0].RecordCount)
			assert.Equal(t, "70.00", resp.GrandTotal.StringFixed(2))
		})

		t.Run("ExportSalarySummary", func(t *testing.T) {
			filename, data, err := flow.ExportSalarySummary(ctx, "2025-03")
			require.NoError(t, err)
			assert.Equal(t, "salary_summary_2025-03.xlsx", filename)
			require.NotEmpty(t, data)

			xl, err := excelize.OpenReader(bytes.NewReader(data))
			require.NoError(t, err)
			defer xl.Close()

			rows, err := xl.GetRows("Salary Summary")
			require.NoError(t, err)
			// Header, two workers, total row.
			require.Len(t, rows, 4)
			assert.Equal(t, "worker_code", rows[0][0])
			assert.Equal(t, "W001", rows[1][0])
			assert.Equal(t, "70.00", rows[3][3])
		})

		t.Run("ProcessWorkload", func(t *testing.T) {
			resp, err := flow.ProcessWorkload(ctx, "2025-03")
			require.NoError(t, err)
			require.Len(t, resp.Items, 1)
			assert.Equal(t, "P1", resp.Items[0].ProcessCode)
			assert.Equal(t, "Process P1", resp.Items[0].ProcessName)
			assert.Equal(t, "20.00", resp.Items[0].TotalQuantity.StringFixed(2))
			assert.Equal(t, "70.00", resp.Items[0].TotalAmount.StringFixed(2))
		})

		t.Run("ProcessWorkloadEmptyMonth", func(t *testing.T) {
			resp, err := flow.ProcessWorkload(ctx, "2020-01")
			require.NoError(t, err)
			assert.Empty(t, resp.Items)
		})

		t.Run("Stats", func(t *testing.T) {
			resp, err := flow.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(2), resp.WorkerCount)
			assert.Equal(t, int64(1), resp.MotorModelCount)
			assert.Equal(t, int64(1), resp.ProcessCount)
			assert.Equal(t, int64(1), resp.QuotaCount)
			assert.Equal(t, int64(4), resp.WageRecordCount)
		})

		t.Run("MalformedMonth", func(t *testing.T) {
			_, err := flow.SalarySummary(ctx, "March 2025")
			require.Error(t, err)
			assert.Equal(t, "REPORT_MONTH_INVALID", ErrorCode(err))

			_, err = flow.ProcessWorkload(ctx, "March 2025")
			require.Error(t, err)
			assert.Equal(t, "REPORT_MONTH_INVALID", ErrorCode(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestQuotaFlowCRUD(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		ctx := testingutil.CreateTestContext()
		fixtures := testingutil.NewTestFixtures(testDB)

		quotaRepo := repository.NewQuotaRepository(testDB.DB)
		cacheCfg := &config.CacheConfig{RedisPrefix: "piecerate:"}
		optionsFlow := NewQuotaOptionsFlow(quotaRepo, nil, cacheCfg)
		flow := NewQuotaFlow(quotaRepo, optionsFlow)

		require.NoError(t, fixtures.CreateTestDictionary("10-A", "C1", "S1", "P1"))

		t.Run("CreateOpenEnded", func(t *testing.T) {
			resp, err := flow.Create(ctx, &dto.CreateQuotaRequest{
				ModelCode:     "10-A",
				Cat1Code:      "C1",
				Cat2Code:      "S1",
				ProcessCode:   "P1",
				UnitPrice:     decimal.RequireFromString("3.50"),
				EffectiveDate: "2025-01-01",
			})
			require.NoError(t, err)
			require.NotNil(t, resp.Quota)
			assert.Equal(t, "9999-12-31", resp.Quota.ObsoleteDate)
			assert.Empty(t, resp.Warnings)
		})

		t.Run("CreateOverlapWarns", func(t *testing.T) {
			resp, err := flow.Create(ctx, &dto.CreateQuotaRequest{
				ModelCode:     "10-A",
				Cat1Code:      "C1",
				Cat2Code:      "S1",
				ProcessCode:   "P1",
				UnitPrice:     decimal.RequireFromString("4.00"),
				EffectiveDate: "2025-06-01",
				ObsoleteDate:  utils.ToPtr("2025-12-31"),
			})
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Warnings)
		})

		t.Run("InvertedWindowRejected", func(t *testing.T) {
			_, err := flow.Create(ctx, &dto.CreateQuotaRequest{
				ModelCode:     "10-A",
				Cat1Code:      "C1",
				Cat2Code:      "S1",
				ProcessCode:   "P1",
				UnitPrice:     decimal.RequireFromString("4.00"),
				EffectiveDate: "2025-06-01",
				ObsoleteDate:  utils.ToPtr("2025-01-01"),
			})
			require.Error(t, err)
			assert.Equal(t, "QUOTA_WINDOW_INVERTED", ErrorCode(err))
		})

		t.Run("NegativePriceRejected", func(t *testing.T) {
			_, err := flow.Create(ctx, &dto.CreateQuotaRequest{
				ModelCode:     "10-A",
				Cat1Code:      "C1",
				Cat2Code:      "S1",
				ProcessCode:   "P1",
				UnitPrice:     decimal.RequireFromString("-1"),
				EffectiveDate: "2025-01-01",
			})
			require.Error(t, err)
			assert.Equal(t, "QUOTA_PRICE_NEGATIVE", ErrorCode(err))
		})

		t.Run("ListFilterValidOn", func(t *testing.T) {
			resp, err := flow.List(ctx, models.QuotaFilter{
				ValidOn: utils.ToPtr(testingutil.Date(2025, time.March, 1)),
			}, 0, 0)
			require.NoError(t, err)
			assert.Len(t, resp.Items, 1)
		})

		return nil
	})
	require.NoError(t, err)
}
