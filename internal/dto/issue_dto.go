package dto

import (
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"github.com/google/uuid"
)

// Issue and comment requests carry no parent ids; parents come from the path.
type CreateIssueRequest struct {
	Name          string             `json:"name"`
	Type          models.IssueType   `json:"type"`
	Level         models.IssueLevel  `json:"level"`
	Status        models.IssueStatus `json:"status"`
	AssignedUsers []uuid.UUID        `json:"assigned_users"`
}

type UpdateIssueRequest struct {
	Name          *string             `json:"name"`
	Type          *models.IssueType   `json:"type"`
	Level         *models.IssueLevel  `json:"level"`
	Status        *models.IssueStatus `json:"status"`
	AssignedUsers *[]uuid.UUID        `json:"assigned_users"`
}

type IssueListResponse struct {
	Issues []models.Issue `json:"issues"`
	Count  int            `json:"count"`
}

type CreateCommentRequest struct {
	Description string `json:"description"`
}

type UpdateCommentRequest struct {
	Description *string `json:"description"`
}

type CommentListResponse struct {
	Comments []models.Comment `json:"comments"`
	Count    int              `json:"count"`
}
