package dtos

type ApplicationRequest struct {
	ProfessionalID string `json:"professional_id" binding:"required"`
	CoverLetter    string `json:"cover_letter"`
	ResumeLink     string `json:"resume_link" binding:"omitempty,url"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPLIED SHORTLISTED REJECTED HIRED"`
	Note   string `json:"note"`
}
