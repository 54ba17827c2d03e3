package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sps2604/Prosearch-sub001/internal/database"
	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/models"
	"gorm.io/gorm"
)

const (
	defaultJobListLimit = 20
	maxJobListLimit     = 100
)

type JobService struct {
	DB  *gorm.DB
	log *slog.Logger
}

func NewJobService(db *gorm.DB, log *slog.Logger) *JobService {
	return &JobService{
		DB:  db,
		log: log,
	}
}

func (s *JobService) CreateJob(req *dtos.JobCreationRequest) (*models.Job, error) {
	var job *models.Job
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// the posting business is created on first use
		var business models.Business
		err := tx.Where(models.Business{Name: strings.TrimSpace(req.BusinessName)}).
			FirstOrCreate(&business).Error
		if err != nil {
			return err
		}

		job = &models.Job{
			BusinessID:  business.ID,
			Title:       req.Title,
			Description: req.Description,
			Location:    req.Location,
			SalaryRange: req.SalaryRange,
			Skills:      JoinSkills(req.Skills),
			JobLink:     req.JobLink,
			Status:      models.JobStatusOpen,
		}
		if err := tx.Omit("Business").Create(job).Error; err != nil {
			return err
		}
		job.Business = business
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.log.Info("job created", slog.Uint64("job_id", uint64(job.ID)), slog.String("business", job.Business.Name))
	return job, nil
}

// ListJobs browses postings, newest first. Query matches title,
// description or skills; Location matches the job location.
func (s *JobService) ListJobs(req *dtos.JobListRequest) ([]models.Job, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	if limit > maxJobListLimit {
		limit = maxJobListLimit
	}

	tx := s.DB.Model(&models.Job{}).Preload("Business")
	if !req.IncludeClosed {
		tx = tx.Where("status = ?", models.JobStatusOpen)
	}
	if q := strings.TrimSpace(req.Query); q != "" {
		pattern := database.ContainsPattern(q)
		tx = tx.Where(
			s.DB.Where(database.ContainsExpr("title"), pattern).
				Or(database.ContainsExpr("description"), pattern).
				Or(database.ContainsExpr("skills"), pattern),
		)
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		tx = tx.Where(database.ContainsExpr("location"), database.ContainsPattern(loc))
	}

	var jobs []models.Job
	if err := tx.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (s *JobService) CloseJob(id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.First(&job, id).Error; err != nil {
		return nil, notFound(err)
	}
	if job.Status == models.JobStatusClosed {
		return &job, nil
	}
	if err := s.DB.Model(&job).Update("status", models.JobStatusClosed).Error; err != nil {
		return nil, fmt.Errorf("close job: %w", err)
	}
	job.Status = models.JobStatusClosed
	s.log.Info("job closed", slog.Uint64("job_id", uint64(job.ID)))
	return &job, nil
}
