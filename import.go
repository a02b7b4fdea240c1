package launchdash

import (
	"fmt"

	"github.com/raykavin/launchdash/pkg/loader"
	"github.com/raykavin/launchdash/pkg/logger"
	"github.com/raykavin/launchdash/pkg/storage"
	"github.com/schollz/progressbar/v3"
	"gorm.io/driver/sqlite"
)

const importBatchSize = 100

// Import loads a CSV dataset and replaces the launch_records table of the
// SQLite database with its records
func Import(csvFile, sqliteFile string, log logger.Logger) error {
	dataset, err := loader.FromCSV(csvFile)
	if err != nil {
		return err
	}

	store, err := storage.FromSQL(sqlite.Open(sqliteFile))
	if err != nil {
		return err
	}
	defer store.Close()

	progressBar := progressbar.Default(int64(dataset.Len()), "importing")
	err = store.ReplaceRecords(dataset.Records(), importBatchSize, func(n int) {
		if err := progressBar.Add(n); err != nil {
			log.Warnf("update progressbar fail: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", csvFile, err)
	}

	if err := progressBar.Finish(); err != nil {
		log.Warnf("finish progressbar fail: %v", err)
	}

	log.WithFields(map[string]any{
		"records": dataset.Len(),
		"source":  csvFile,
		"target":  sqliteFile,
	}).Info("Launch records imported")

	return nil
}
