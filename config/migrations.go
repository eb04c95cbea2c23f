package config

import (
	"os"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/quarry/models"
)

// Migrations brings the schema up to date. The unique index on report_date
// is opt-in: by default two submissions for the same day both succeed and
// both rows are kept.
func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250301_create_quarry_reports",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ReportRow{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&models.ReportRow{})
			},
		},
	})

	if err := m.Migrate(); err != nil {
		return err
	}

	if os.Getenv("QUARRY_UNIQUE_REPORT_DATE") == "true" {
		return db.Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS uq_quarry_reports_report_date ON quarry_reports (report_date)",
		).Error
	}
	return nil
}
