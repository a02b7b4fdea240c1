package storage

import (
	"fmt"
	"time"

	"github.com/raykavin/launchdash/pkg/core"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// launchRecordRow is the launch_records table model
type launchRecordRow struct {
	ID             uint    `gorm:"primaryKey"`
	FlightNumber   int     `gorm:"index"`
	Site           string  `gorm:"index;not null"`
	PayloadMass    float64 `gorm:"not null"`
	Success        bool    `gorm:"not null"`
	BoosterVersion string
}

func (launchRecordRow) TableName() string { return "launch_records" }

func toRow(record core.LaunchRecord) launchRecordRow {
	return launchRecordRow{
		FlightNumber:   record.FlightNumber,
		Site:           record.Site,
		PayloadMass:    record.PayloadMass,
		Success:        record.IsSuccess(),
		BoosterVersion: record.BoosterVersion,
	}
}

func (r launchRecordRow) toRecord() core.LaunchRecord {
	outcome := core.Failure
	if r.Success {
		outcome = core.Success
	}

	return core.LaunchRecord{
		FlightNumber:   r.FlightNumber,
		Site:           r.Site,
		PayloadMass:    r.PayloadMass,
		Outcome:        outcome,
		BoosterVersion: r.BoosterVersion,
	}
}

// SQLStorage keeps launch records in a SQL database via GORM
type SQLStorage struct {
	db *gorm.DB
}

// FromSQL opens the database and migrates the launch_records table
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (*SQLStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = db.AutoMigrate(&launchRecordRow{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{
		db: db,
	}, nil
}

// ReplaceRecords deletes every stored record and inserts records in order,
// calling progress after each batch with the number of rows written.
func (s *SQLStorage) ReplaceRecords(records []core.LaunchRecord, batchSize int, progress func(n int)) error {
	if batchSize <= 0 {
		batchSize = 100
	}

	rows := lo.Map(records, func(record core.LaunchRecord, _ int) launchRecordRow {
		return toRow(record)
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&launchRecordRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear launch records: %w", err)
		}

		for _, batch := range lo.Chunk(rows, batchSize) {
			if err := tx.Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to insert launch records: %w", err)
			}
			if progress != nil {
				progress(len(batch))
			}
		}

		return nil
	})
}

// Records returns every stored record in insertion order
func (s *SQLStorage) Records() ([]core.LaunchRecord, error) {
	var rows []launchRecordRow

	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch launch records: %w", err)
	}

	return lo.Map(rows, func(row launchRecordRow, _ int) core.LaunchRecord {
		return row.toRecord()
	}), nil
}

// Close closes the database connection
func (s *SQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
