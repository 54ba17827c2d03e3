package services

import (
	"testing"

	"github.com/sps2604/Prosearch-sub001/internal/database/databasetest"
	"github.com/sps2604/Prosearch-sub001/internal/dtos"
	"github.com/sps2604/Prosearch-sub001/internal/logger"
	"github.com/sps2604/Prosearch-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db           *gorm.DB
	profiles     *ProfileService
	jobs         *JobService
	applications *ApplicationService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := databasetest.Open(t)
	log := logger.Discard()
	return fixture{
		db:           db,
		profiles:     NewProfileService(db, log),
		jobs:         NewJobService(db, log),
		applications: NewApplicationService(db, log),
	}
}

func (f fixture) professional(t *testing.T, name, email string) *models.Professional {
	t.Helper()
	p, err := f.profiles.CreateProfessional(&dtos.ProfessionalCreationRequest{
		Name:       name,
		Profession: "Interior Designer",
		Email:      email,
	})
	require.NoError(t, err)
	return p
}

func (f fixture) job(t *testing.T, business, title, location string) *models.Job {
	t.Helper()
	j, err := f.jobs.CreateJob(&dtos.JobCreationRequest{
		BusinessName: business,
		Title:        title,
		Description:  "Design residential spaces",
		Location:     location,
		Skills:       []string{"AutoCAD", "sketchup"},
	})
	require.NoError(t, err)
	return j
}

func TestJoinSkills(t *testing.T) {
	assert.Equal(t, "Go, postgres", JoinSkills([]string{" Go ", "", "postgres", "go"}))
	assert.Equal(t, "", JoinSkills(nil))
}

func TestCreateProfessional_NormalisesOptionalFields(t *testing.T) {
	f := newFixture(t)
	years := 4.5

	p, err := f.profiles.CreateProfessional(&dtos.ProfessionalCreationRequest{
		Name:            " Asha Rao ",
		Profession:      "Product Designer",
		Email:           "Asha@Example.com",
		Address:         "  ",
		ExperienceYears: &years,
		Skills:          []string{"figma", "Figma", "ux research"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Asha Rao", p.Name)
	assert.Equal(t, "asha@example.com", p.Email)
	assert.Nil(t, p.Address)
	require.NotNil(t, p.Skills)
	assert.Equal(t, "figma, ux research", *p.Skills)

	got, err := f.profiles.GetProfessional(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, *got.ExperienceYears)
}

func TestCreateProfessional_DuplicateEmailFails(t *testing.T) {
	f := newFixture(t)
	f.professional(t, "Asha", "asha@example.com")

	_, err := f.profiles.CreateProfessional(&dtos.ProfessionalCreationRequest{
		Name: "Other", Profession: "Architect", Email: "ASHA@example.com",
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestGetProfessional_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.profiles.GetProfessional("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.profiles.GetProfessionalByName("Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfessionalByName(t *testing.T) {
	f := newFixture(t)
	first := f.professional(t, "Asha Rao", "asha1@example.com")
	f.professional(t, "Asha Rao", "asha2@example.com")

	got, err := f.profiles.GetProfessionalByName("Asha Rao")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
}

func TestCreateJob_ReusesBusiness(t *testing.T) {
	f := newFixture(t)

	a := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")
	b := f.job(t, "Sharma Interiors", "Draftsman", "Pune")

	assert.Equal(t, a.BusinessID, b.BusinessID)
	assert.Equal(t, "Sharma Interiors", b.Business.Name)
	assert.Equal(t, models.JobStatusOpen, a.Status)
	assert.Equal(t, "AutoCAD, sketchup", a.Skills)

	var count int64
	f.db.Model(&models.Business{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListJobs_Filters(t *testing.T) {
	f := newFixture(t)
	designer := f.job(t, "Sharma Interiors", "Interior Designer", "Baner, Pune")
	f.job(t, "Mehta Builders", "Site Engineer", "Mumbai")
	drafts := f.job(t, "Mehta Builders", "Draftsman", "PUNE")

	jobs, err := f.jobs.ListJobs(&dtos.JobListRequest{Location: "pune"})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	jobs, err = f.jobs.ListJobs(&dtos.JobListRequest{Query: "designer"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, designer.ID, jobs[0].ID)
	assert.Equal(t, "Sharma Interiors", jobs[0].Business.Name)

	_, err = f.jobs.CloseJob(drafts.ID)
	require.NoError(t, err)

	jobs, err = f.jobs.ListJobs(&dtos.JobListRequest{Location: "pune"})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	jobs, err = f.jobs.ListJobs(&dtos.JobListRequest{Location: "pune", IncludeClosed: true})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	jobs, err = f.jobs.ListJobs(&dtos.JobListRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestCloseJob(t *testing.T) {
	f := newFixture(t)
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")

	closed, err := f.jobs.CloseJob(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, closed.Status)

	again, err := f.jobs.CloseJob(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, again.Status)

	_, err = f.jobs.CloseJob(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	p := f.professional(t, "Asha Rao", "asha@example.com")
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")

	app, err := f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: p.ID, CoverLetter: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, app.Status)

	_, err = f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: p.ID})
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	events, err := f.applications.Events(app.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventApplied, events[0].EventType)
	assert.Contains(t, events[0].Details, "Asha Rao")

	apps, err := f.applications.ListForJob(j.ID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Asha Rao", apps[0].Professional.Name)
}

func TestApply_Rejections(t *testing.T) {
	f := newFixture(t)
	p := f.professional(t, "Asha Rao", "asha@example.com")
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")

	_, err := f.applications.Apply(9999, &dtos.ApplicationRequest{ProfessionalID: p.ID})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.jobs.CloseJob(j.ID)
	require.NoError(t, err)
	_, err = f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: p.ID})
	assert.ErrorIs(t, err, ErrJobClosed)

	_, err = f.applications.ListForJob(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApply_ExistingRowIsDuplicate(t *testing.T) {
	f := newFixture(t)
	p := f.professional(t, "Asha Rao", "asha@example.com")
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")

	require.NoError(t, f.db.Omit("Job", "Professional").Create(&models.Application{
		JobID:          j.ID,
		ProfessionalID: p.ID,
		Status:         models.ApplicationApplied,
	}).Error)

	_, err := f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: p.ID})
	assert.ErrorIs(t, err, ErrDuplicateApplication)
}

func TestInsertApplication_UniqueViolationIsDuplicate(t *testing.T) {
	f := newFixture(t)
	p := f.professional(t, "Asha Rao", "asha@example.com")
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")

	// a concurrent Apply that passed the count check lands here
	first := &models.Application{JobID: j.ID, ProfessionalID: p.ID, Status: models.ApplicationApplied}
	require.NoError(t, insertApplication(f.db, first))

	second := &models.Application{JobID: j.ID, ProfessionalID: p.ID, Status: models.ApplicationApplied}
	assert.ErrorIs(t, insertApplication(f.db, second), ErrDuplicateApplication)

	var count int64
	require.NoError(t, f.db.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	p := f.professional(t, "Asha Rao", "asha@example.com")
	j := f.job(t, "Sharma Interiors", "Interior Designer", "Pune")
	app, err := f.applications.Apply(j.ID, &dtos.ApplicationRequest{ProfessionalID: p.ID})
	require.NoError(t, err)

	updated, err := f.applications.UpdateStatus(app.ID, &dtos.ApplicationStatusRequest{
		Status: models.ApplicationShortlisted,
		Note:   "strong portfolio",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationShortlisted, updated.Status)

	// unchanged status writes no event
	_, err = f.applications.UpdateStatus(app.ID, &dtos.ApplicationStatusRequest{Status: models.ApplicationShortlisted})
	require.NoError(t, err)

	events, err := f.applications.Events(app.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventStatusChanged, events[1].EventType)
	assert.Equal(t, "Status changed from APPLIED to SHORTLISTED. Note: strong portfolio", events[1].Details)

	_, err = f.applications.UpdateStatus(app.ID, &dtos.ApplicationStatusRequest{Status: "GHOSTED"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.applications.UpdateStatus(9999, &dtos.ApplicationStatusRequest{Status: models.ApplicationHired})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBusiness(t *testing.T) {
	f := newFixture(t)

	b, err := f.profiles.CreateBusiness(&dtos.BusinessCreationRequest{Name: " Sharma Interiors "})
	require.NoError(t, err)
	assert.Equal(t, "Sharma Interiors", b.Name)

	_, err = f.profiles.CreateBusiness(&dtos.BusinessCreationRequest{Name: "Sharma Interiors"})
	assert.Error(t, err)
}
