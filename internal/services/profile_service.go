package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/models"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB  *gorm.DB
	log *slog.Logger
}

func NewProfileService(db *gorm.DB, log *slog.Logger) *ProfileService {
	return &ProfileService{DB: db, log: log}
}

func (s *ProfileService) CreateProfessional(req *dtos.ProfessionalCreationRequest) (*models.Professional, error) {
	p := &models.Professional{
		Name:            strings.TrimSpace(req.Name),
		Profession:      strings.TrimSpace(req.Profession),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Address:         optional(req.Address),
		ExperienceYears: req.ExperienceYears,
		Skills:          optional(JoinSkills(req.Skills)),
		AvatarURL:       optional(req.AvatarURL),
		Bio:             req.Bio,
	}
	if err := s.DB.Create(p).Error; err != nil {
		return nil, fmt.Errorf("create professional: %w", err)
	}
	s.log.Info("professional created", slog.String("id", p.ID), slog.String("profession", p.Profession))
	return p, nil
}

func (s *ProfileService) GetProfessional(id string) (*models.Professional, error) {
	var p models.Professional
	if err := s.DB.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// GetProfessionalByName backs the name-keyed profile route. Names are not
// unique; the earliest registered match wins.
func (s *ProfileService) GetProfessionalByName(name string) (*models.Professional, error) {
	var p models.Professional
	err := s.DB.Where("name = ?", strings.TrimSpace(name)).Order("created_at ASC").First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *ProfileService) CreateBusiness(req *dtos.BusinessCreationRequest) (*models.Business, error) {
	b := &models.Business{
		Name:    strings.TrimSpace(req.Name),
		Address: req.Address,
		Website: req.Website,
	}
	if err := s.DB.Create(b).Error; err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return b, nil
}

// JoinSkills normalises skill tokens into the comma-joined column format.
func JoinSkills(skills []string) string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return strings.Join(out, ", ")
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
