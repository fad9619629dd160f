// Package testing provides test utilities and database setup for testing the piece-rate service
package testing

import (
	"fmt"
	"time"

	"github.com/dahe-motor/piecerate/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestWorker creates a worker with a unique code
func (tf *TestFixtures) CreateTestWorker(code, name string) (*models.Worker, error) {
	worker := &models.Worker{
		WorkerCode: code,
		Name:       name,
	}
	if err := tf.DB.DB.Create(worker).Error; err != nil {
		return nil, fmt.Errorf("failed to create test worker %s: %w", code, err)
	}
	return worker, nil
}

// CreateTestDictionary inserts one entry into each dictionary table so a
// quota combination referencing them has display names to join against.
func (tf *TestFixtures) CreateTestDictionary(modelCode, cat1Code, cat2Code, processCode string) error {
	model := &models.MotorModel{ModelCode: modelCode, Name: "Model " + modelCode}
	if err := tf.DB.DB.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create test motor model %s: %w", modelCode, err)
	}
	cat1 := &models.ProcessCat1{Cat1Code: cat1Code, Name: "Section " + cat1Code}
	if err := tf.DB.DB.Create(cat1).Error; err != nil {
		return fmt.Errorf("failed to create test cat1 %s: %w", cat1Code, err)
	}
	cat2 := &models.ProcessCat2{Cat2Code: cat2Code, Name: "Stage " + cat2Code}
	if err := tf.DB.DB.Create(cat2).Error; err != nil {
		return fmt.Errorf("failed to create test cat2 %s: %w", cat2Code, err)
	}
	process := &models.Process{ProcessCode: processCode, Name: "Process " + processCode}
	if err := tf.DB.DB.Create(process).Error; err != nil {
		return fmt.Errorf("failed to create test process %s: %w", processCode, err)
	}
	return nil
}

// CreateTestQuota creates a quota row pricing the given combination for an
// inclusive validity window
func (tf *TestFixtures) CreateTestQuota(modelCode, cat1Code, cat2Code, processCode string, price string, effective, obsolete time.Time) (*models.Quota, error) {
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", price, err)
	}
	quota := &models.Quota{
		ModelCode:     modelCode,
		Cat1Code:      cat1Code,
		Cat2Code:      cat2Code,
		ProcessCode:   processCode,
		UnitPrice:     unitPrice,
		EffectiveDate: effective,
		ObsoleteDate:  obsolete,
	}
	if err := tf.DB.DB.Create(quota).Error; err != nil {
		return nil, fmt.Errorf("failed to create test quota: %w", err)
	}
	return quota, nil
}

// CreateTestWageRecord creates a wage record with snapshotted pricing
func (tf *TestFixtures) CreateTestWageRecord(workerCode string, quotaID uint, quantity, unitPrice string, recordDate time.Time) (*models.WageRecord, error) {
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price %q: %w", unitPrice, err)
	}
	record := &models.WageRecord{
		WorkerCode: workerCode,
		QuotaID:    quotaID,
		Quantity:   qty,
		UnitPrice:  price,
		Amount:     qty.Mul(price),
		RecordDate: recordDate,
		BatchID:    uuid.New(),
	}
	if err := tf.DB.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create test wage record: %w", err)
	}
	return record, nil
}

// Date is shorthand for a UTC midnight date, the representation every
// quota window and wage record uses
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
