package model

// Project is the canonical project record held by the project service.
// Code is immutable and globally unique; it is the primary key for
// authorization decisions.
type Project struct {
	ID             string   `json:"id"`
	GlobalEntityID string   `json:"global_entity_id,omitempty"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	Discoverable   bool     `json:"discoverable"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// ProjectCreateRequest is the portal payload for creating a project.
type ProjectCreateRequest struct {
	Name         string   `json:"name" binding:"required"`
	Code         string   `json:"code" binding:"required"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Discoverable bool     `json:"is_discoverable"`
	Icon         string   `json:"icon"`
}

// ProjectUpdateRequest carries the mutable project fields.
type ProjectUpdateRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Discoverable *bool    `json:"is_discoverable"`
	Icon         string   `json:"icon"`
}

// ResourceRequest asks for access to an analysis resource of a project.
type ResourceRequest struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	RequestFor   string `json:"request_for"`
	RequestDate  string `json:"request_date"`
	Active       bool   `json:"active"`
	CompleteDate string `json:"complete_date,omitempty"`
}

// ResourceRequestCreate is the portal payload for a new resource request.
type ResourceRequestCreate struct {
	ProjectID  string `json:"project_id" binding:"required"`
	RequestFor string `json:"request_for" binding:"required"`
}
