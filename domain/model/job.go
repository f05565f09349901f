package model

// JobSummary is the slice of a job posting the social dispatcher needs.
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CompanyName string `json:"company_name"`
	CompanySite string `json:"company_site"`
}
