package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "OPEN"
	JobStatusClosed = "CLOSED"
)

const (
	ApplicationApplied     = "APPLIED"
	ApplicationShortlisted = "SHORTLISTED"
	ApplicationRejected    = "REJECTED"
	ApplicationHired       = "HIRED"
)

// Professional is one entry of the searchable directory.
type Professional struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name            string   `gorm:"not null;index" json:"name"`
	Profession      string   `gorm:"not null" json:"profession"`
	Email           string   `gorm:"uniqueIndex" json:"email"`
	Address         *string  `json:"address,omitempty"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	// Comma-joined skill tokens, e.g. "figma, ux research"
	Skills    *string `json:"skills,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Bio       string  `gorm:"type:text" json:"bio"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (p *Professional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Business struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"uniqueIndex;not null" json:"business_name"`
	Address string `json:"address"`
	Website string `json:"website"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Business -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessID uint `json:"business_id"`
	// Association: GORM needs Preload() to fill this
	Business Business `json:"business"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Skills      string `json:"skills"`
	JobLink     string `json:"job_link"`
	Status      string `gorm:"default:'OPEN'" json:"status"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID          uint         `gorm:"uniqueIndex:idx_application_job_professional" json:"job_id"`
	Job            Job          `json:"job,omitempty"`
	ProfessionalID string       `gorm:"type:varchar(36);uniqueIndex:idx_application_job_professional" json:"professional_id"`
	Professional   Professional `json:"professional,omitempty"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	ResumeLink  string `json:"resume_link"`
	Status      string `gorm:"default:'APPLIED'" json:"status"`
}

// ApplicationEvent is the status history of an application.
type ApplicationEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uint      `gorm:"index" json:"application_id"`
	EventType     string    `json:"event_type"`
	Details       string    `gorm:"type:text" json:"details"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&Professional{}, &Business{}, &Job{}, &Application{}, &ApplicationEvent{}}
}
