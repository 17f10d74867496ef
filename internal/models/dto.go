package models

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ClientCredentialsTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

type RevokeRequest struct {
	Token string `json:"token" validate:"required"`
}

type CreateClientRequest struct {
	Name             string   `json:"name" validate:"required,max=128"`
	Description      string   `json:"description"`
	Scopes           []string `json:"scopes" validate:"dive,oneof=read write"`
	RateLimitPerHour int      `json:"rate_limit_per_hour" validate:"omitempty,min=1"`
}

type UpdateClientRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	RateLimitPerHour *int    `json:"rate_limit_per_hour,omitempty" validate:"omitempty,min=1"`
}

// ClientCredentialsResponse carries the plain secret. Only returned at
// creation time.
type ClientCredentialsResponse struct {
	Client       *APIClient `json:"client"`
	ClientSecret string     `json:"client_secret"`
}

type CreateJobRequest struct {
	Title   string `json:"title" validate:"required,max=256"`
	Summary string `json:"summary"`
	Content string `json:"content" validate:"required"`
}

type UpdateJobRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=256"`
	Summary *string `json:"summary,omitempty"`
	Content *string `json:"content,omitempty"`
}

// CreateShortlistRequest triggers one matching run. Threshold is a pointer
// so an explicit 0.0 stays distinguishable from an omitted field; only the
// latter falls back to the configured default.
type CreateShortlistRequest struct {
	JobDescriptionID string   `json:"job_description_id" validate:"required,uuid"`
	CVIDs            []string `json:"cv_ids" validate:"required,dive,uuid"`
	Threshold        *float64 `json:"threshold"`
}

// ShortlistReport is the response of one matching run. Result order inside
// each partition follows the candidate input order.
type ShortlistReport struct {
	JobDescription   *JobDescription   `json:"job_description"`
	Shortlisted      []ShortlistResult `json:"shortlisted"`
	Rejected         []ShortlistResult `json:"rejected"`
	Threshold        float64           `json:"threshold"`
	TotalCandidates  int               `json:"total_candidates"`
	ShortlistedCount int               `json:"shortlisted_count"`
	RejectedCount    int               `json:"rejected_count"`
}

type ClientStats struct {
	ClientID        string `json:"client_id"`
	ClientName      string `json:"client_name"`
	TotalCVs        int64  `json:"total_cvs"`
	TotalJobs       int64  `json:"total_jobs"`
	TotalShortlists int64  `json:"total_shortlists"`
	IsActive        bool   `json:"is_active"`
}

type SystemOverview struct {
	TotalClients    int64  `json:"total_clients"`
	ActiveClients   int64  `json:"active_clients"`
	ActiveTokens    int64  `json:"active_tokens"`
	TotalUsers      int64  `json:"total_users"`
	TotalCVs        int64  `json:"total_cvs"`
	TotalJobs       int64  `json:"total_jobs"`
	TotalShortlists int64  `json:"total_shortlists"`
	SystemStatus    string `json:"system_status"`
}
