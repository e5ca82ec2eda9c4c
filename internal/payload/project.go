package payload

// CreateProjectRequest is the JSON body variant of project creation;
// multipart requests carry the same fields as form values plus an optional
// image file.
type CreateProjectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	TechStack    []string `json:"techStack"`
	GithubRepo   string   `json:"githubRepo"`
	DeployLink   string   `json:"deployLink"`
	DemoVideoURL string   `json:"demoVideoUrl"`
}

// UpdateProjectRequest is the JSON body variant of a partial project
// update: nil means "leave unchanged", a pointer to "" clears the field.
type UpdateProjectRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	TechStack    *[]string `json:"techStack"`
	GithubRepo   *string   `json:"githubRepo"`
	DeployLink   *string   `json:"deployLink"`
	DemoVideoURL *string   `json:"demoVideoUrl"`
}
