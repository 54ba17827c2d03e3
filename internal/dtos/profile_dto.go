package dtos

type ProfessionalCreationRequest struct {
	Name       string `json:"name" binding:"required"`
	Profession string `json:"profession" binding:"required"`
	Email      string `json:"email" binding:"required,email"`

	// Optional Fields
	Address         string   `json:"address"`
	ExperienceYears *float64 `json:"experience_years" binding:"omitempty,gte=0,lte=80"`
	Skills          []string `json:"skills"`
	AvatarURL       string   `json:"avatar_url" binding:"omitempty,url"`
	Bio             string   `json:"bio"`
}

type BusinessCreationRequest struct {
	Name    string `json:"business_name" binding:"required"`
	Address string `json:"address"`
	Website string `json:"website" binding:"omitempty,url"`
}

// ProfessionalSearchRequest is bound from the query string of
// GET /professionals/search. Limit is clamped, not rejected.
type ProfessionalSearchRequest struct {
	Query         string   `form:"q"`
	Location      string   `form:"location"`
	MinExperience *float64 `form:"min_experience"`
	Limit         *int     `form:"limit"`
}
