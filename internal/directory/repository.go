// Package directory implements search.Directory on top of the application
// database and on top of a hosted PostgREST-style backend.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/sps2604/Prosearch-sub001/internal/database"
	"github.com/sps2604/Prosearch-sub001/internal/models"
	"github.com/sps2604/Prosearch-sub001/internal/search"
	"gorm.io/gorm"
)

// columns maps search fields to database columns. Anything not listed
// here is rejected before it reaches SQL.
var columns = map[string]string{
	search.FieldID:              "id",
	search.FieldName:            "name",
	search.FieldProfession:      "profession",
	search.FieldAddress:         "address",
	search.FieldExperienceYears: "experience_years",
	search.FieldSkills:          "skills",
	search.FieldAvatarURL:       "avatar_url",
}

// Repository searches the professionals table through gorm.
type Repository struct {
	DB  *gorm.DB
	log *slog.Logger
}

func NewRepository(db *gorm.DB, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{DB: db, log: log.With(slog.String("component", "directory.repository"))}
}

func (r *Repository) Find(ctx context.Context, q search.Query) ([]search.ProfessionalSummary, error) {
	selected, err := selectColumns(q.Fields)
	if err != nil {
		return nil, search.Rejected(err.Error(), err)
	}

	tx := r.DB.WithContext(ctx).Model(&models.Professional{}).Select(selected)

	if len(q.AnyOf) > 0 {
		var group *gorm.DB
		for _, p := range q.AnyOf {
			expr, arg, err := condition(p)
			if err != nil {
				return nil, search.Rejected(err.Error(), err)
			}
			if group == nil {
				group = r.DB.Where(expr, arg)
			} else {
				group = group.Or(expr, arg)
			}
		}
		tx = tx.Where(group)
	}

	for _, p := range q.AllOf {
		expr, arg, err := condition(p)
		if err != nil {
			return nil, search.Rejected(err.Error(), err)
		}
		tx = tx.Where(expr, arg)
	}

	var rows []models.Professional
	if err := tx.Limit(search.ClampLimit(q.Limit)).Find(&rows).Error; err != nil {
		r.log.Error("directory query failed", slog.String("error", err.Error()))
		return nil, classify(err)
	}

	out := make([]search.ProfessionalSummary, len(rows))
	for i, row := range rows {
		out[i] = Summary(row)
	}
	return out, nil
}

// Summary projects a stored professional onto a search result.
func Summary(p models.Professional) search.ProfessionalSummary {
	return search.ProfessionalSummary{
		ID:              p.ID,
		Name:            p.Name,
		Profession:      p.Profession,
		Address:         p.Address,
		ExperienceYears: p.ExperienceYears,
		Skills:          p.Skills,
		AvatarURL:       p.AvatarURL,
	}
}

func selectColumns(fields []string) ([]string, error) {
	if len(fields) == 0 {
		fields = search.SummaryFields
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		col, ok := columns[f]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", f)
		}
		out = append(out, col)
	}
	return out, nil
}

func condition(p search.Predicate) (string, any, error) {
	col, ok := columns[p.Field]
	if !ok {
		return "", nil, fmt.Errorf("unknown field %q", p.Field)
	}

	switch p.Op {
	case search.OpContains:
		s, ok := p.Value.(string)
		if !ok {
			return "", nil, fmt.Errorf("field %q: contains needs a string, got %T", p.Field, p.Value)
		}
		return database.ContainsExpr(col), database.ContainsPattern(s), nil
	case search.OpGte:
		switch p.Value.(type) {
		case float64, float32, int, int64:
		default:
			return "", nil, fmt.Errorf("field %q: gte needs a number, got %T", p.Field, p.Value)
		}
		return col + " >= ?", p.Value, nil
	default:
		return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
	}
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return search.Transport("search interrupted", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return search.Transport("directory unreachable", err)
	}
	return search.Rejected(err.Error(), err)
}
