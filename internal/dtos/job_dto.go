package dtos

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

type JobCreationRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Title        string `json:"role_title" binding:"required"`
	Description  string `json:"description" binding:"required"`

	// Optional Fields
	JobLink     string   `json:"job_link" binding:"omitempty,url"`
	Location    string   `json:"location"`
	SalaryRange string   `json:"salary_range"`
	Skills      []string `json:"skills"`
}

type JobListRequest struct {
	Query    string `form:"q"`
	Location string `form:"location"`
	// Closed jobs are hidden unless this is set
	IncludeClosed bool `form:"include_closed"`
	Limit         int  `form:"limit"`
}
