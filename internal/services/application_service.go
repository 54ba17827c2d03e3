package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/models"
	"gorm.io/gorm"
)

const (
	EventApplied       = "APPLIED"
	EventStatusChanged = "STATUS_CHANGE"
)

var validApplicationStatus = map[string]bool{
	models.ApplicationApplied:     true,
	models.ApplicationShortlisted: true,
	models.ApplicationRejected:    true,
	models.ApplicationHired:       true,
}

type ApplicationService struct {
	DB  *gorm.DB
	log *slog.Logger
}

func NewApplicationService(db *gorm.DB, log *slog.Logger) *ApplicationService {
	return &ApplicationService{DB: db, log: log}
}

// Apply records a professional's application to an open job.
func (s *ApplicationService) Apply(jobID uint, req *dtos.ApplicationRequest) (*models.Application, error) {
	var app *models.Application
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		if job.Status != models.JobStatusOpen {
			return ErrJobClosed
		}

		var professional models.Professional
		if err := tx.Where("id = ?", req.ProfessionalID).First(&professional).Error; err != nil {
			return notFound(err)
		}

		var count int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND professional_id = ?", jobID, req.ProfessionalID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("check existing application: %w", err)
		}
		if count > 0 {
			return ErrDuplicateApplication
		}

		app = &models.Application{
			JobID:          jobID,
			ProfessionalID: professional.ID,
			CoverLetter:    req.CoverLetter,
			ResumeLink:     req.ResumeLink,
			Status:         models.ApplicationApplied,
		}
		if err := insertApplication(tx, app); err != nil {
			return err
		}

		event := models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     EventApplied,
			Details:       fmt.Sprintf("%s applied to %s", professional.Name, job.Title),
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("application received",
		slog.Uint64("job_id", uint64(jobID)),
		slog.String("professional_id", req.ProfessionalID),
	)
	return app, nil
}

// insertApplication maps a job+professional unique violation, which a
// concurrent Apply can hit after both passed the count check, to
// ErrDuplicateApplication. The DB must be opened with TranslateError.
func insertApplication(tx *gorm.DB, app *models.Application) error {
	err := tx.Omit("Job", "Professional").Create(app).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (s *ApplicationService) ListForJob(jobID uint) ([]models.Application, error) {
	var job models.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}

	var apps []models.Application
	err := s.DB.Preload("Professional").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus moves an application to a new status and logs the change.
// Setting the current status again is a no-op.
func (s *ApplicationService) UpdateStatus(id uint, req *dtos.ApplicationStatusRequest) (*models.Application, error) {
	if !validApplicationStatus[req.Status] {
		return nil, ErrInvalidStatus
	}

	var app models.Application
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, id).Error; err != nil {
			return notFound(err)
		}
		if app.Status == req.Status {
			return nil
		}

		previous := app.Status
		if err := tx.Model(&app).Update("status", req.Status).Error; err != nil {
			return err
		}
		app.Status = req.Status

		details := fmt.Sprintf("Status changed from %s to %s", previous, req.Status)
		if req.Note != "" {
			details += ". Note: " + req.Note
		}
		event := models.ApplicationEvent{
			ApplicationID: app.ID,
			EventType:     EventStatusChanged,
			Details:       details,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Events(applicationID uint) ([]models.ApplicationEvent, error) {
	var events []models.ApplicationEvent
	err := s.DB.Where("application_id = ?", applicationID).Order("id ASC").Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list application events: %w", err)
	}
	return events, nil
}
