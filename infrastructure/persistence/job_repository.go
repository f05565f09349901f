package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hireboard/domain/model"
	"hireboard/infrastructure/configuration"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewJobsDb opens the ATS MySQL database that owns the jobs table. Read-only
// from this service's perspective.
func NewJobsDb() (*gorm.DB, error) {
	cfg := configuration.C.Database.MySql
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

type jobRow struct {
	ID          string
	Title       string
	Description string
	CompanyName string
	CompanySite string
}

// JobRepository reads job summaries via gorm. The requeue worker uses it to
// re-hydrate job fields before a retry, since titles can change in between.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository { return &JobRepository{db: db} }

func (r *JobRepository) GetSummary(ctx context.Context, jobID string) (*model.JobSummary, error) {
	var row jobRow
	err := r.db.WithContext(ctx).
		Table("jobs").
		Select("id, title, description, company_name, company_site").
		Where("id = ?", jobID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s not found", jobID)
		}
		return nil, err
	}
	return &model.JobSummary{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		CompanyName: row.CompanyName,
		CompanySite: row.CompanySite,
	}, nil
}
