package dto

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
)

// Project requests never carry an author: it is always the acting user.
type CreateProjectRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        models.ProjectType `json:"type"`
}

type UpdateProjectRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Type        *models.ProjectType `json:"type"`
}

type ContributorRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
}

type ContributorListResponse struct {
	Contributors []models.Membership `json:"contributors"`
	Count        int                 `json:"count"`
}
