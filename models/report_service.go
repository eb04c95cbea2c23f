package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrReportNotFound is returned by ByID when no row matches.
var ErrReportNotFound = errors.New("report not found")

// ReportService owns all access to the quarry_reports table. The *gorm.DB
// carries the configured connection pool; handlers receive the service by
// injection rather than reaching for a package-level connection.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create appends one report as a single atomic insert. Either the whole
// 54-column row is committed or nothing is.
func (s *ReportService) Create(r *Report) error {
	row := Flatten(r)
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("insert quarry report: %w", err)
	}
	r.ID = row.ID
	r.CreatedAt = row.CreatedAt
	r.UpdatedAt = row.UpdatedAt
	return nil
}

// CreateBatch inserts many reports in one transaction, skipping rows whose
// id already exists.
func (s *ReportService) CreateBatch(reports []Report) error {
	if len(reports) == 0 {
		return nil
	}
	rows := make([]ReportRow, len(reports))
	for i := range reports {
		rows[i] = Flatten(&reports[i])
	}
	err := s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("batch insert quarry reports: %w", err)
	}
	return nil
}

// Recent returns up to limit reports ordered most recent first. Ties on
// report_date fall back to storage order.
func (s *ReportService) Recent(limit int) ([]Report, error) {
	var rows []ReportRow
	if err := s.db.Order("report_date DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch recent reports: %w", err)
	}
	return unflattenAll(rows), nil
}

// ByID fetches a single report by its UUID.
func (s *ReportService) ByID(id string) (*Report, error) {
	var row ReportRow
	result := s.db.Where("id = ?", id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("fetch report %s: %w", id, result.Error)
	}
	r := Unflatten(&row)
	return &r, nil
}

// List returns one page of reports, newest first, plus the total row count.
func (s *ReportService) List(page, pageSize int) ([]Report, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	var total int64
	if err := s.db.Model(&ReportRow{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	var rows []ReportRow
	err := s.db.
		Order("report_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	return unflattenAll(rows), total, nil
}

// All returns every stored report, newest first. Used by the exports and
// the statistics endpoint.
func (s *ReportService) All() ([]Report, error) {
	var rows []ReportRow
	if err := s.db.Order("report_date DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch all reports: %w", err)
	}
	return unflattenAll(rows), nil
}

func unflattenAll(rows []ReportRow) []Report {
	reports := make([]Report, len(rows))
	for i := range rows {
		reports[i] = Unflatten(&rows[i])
	}
	return reports
}
