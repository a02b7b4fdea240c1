package loader

import (
	"fmt"

	"github.com/raykavin/launchdash/pkg/core"
	"github.com/raykavin/launchdash/pkg/storage"
	"gorm.io/gorm"
)

// FromSQL loads the dataset from the launch_records table of a SQL database
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (*core.Dataset, error) {
	store, err := storage.FromSQL(dialect, opts...)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	records, err := store.Records()
	if err != nil {
		return nil, fmt.Errorf("failed to read launch records: %w", err)
	}

	return core.NewDataset(records)
}
