package api

import (
	"context"
	"fmt"

	"github.com/danialarif/gigdesk/internal/domain"
)

// GetProject fetches one project through the role-specific endpoint
// tree. Admin and provider payloads share the fields the client needs.
func (c *Client) GetProject(ctx context.Context, role domain.Role, id string) (*domain.Project, error) {
	var p domain.Project
	if err := c.get(ctx, fmt.Sprintf("/%s/projects/%s", role, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects fetches the projects visible to the current role.
func (c *Client) ListProjects(ctx context.Context, role domain.Role) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, fmt.Sprintf("/%s/projects", role), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject applies a partial field update as admin.
func (c *Client) UpdateProject(ctx context.Context, id string, patch map[string]any) (*domain.Project, error) {
	var p domain.Project
	if err := c.do(ctx, "PATCH", "/admin/projects/"+id, patch, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCompletedProjects fetches projects eligible for review.
func (c *Client) ListCompletedProjects(ctx context.Context, role domain.Role) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.get(ctx, fmt.Sprintf("/%s/reviews/completed-projects", role), &projects); err != nil {
		return nil, err
	}
	return projects, nil
}
