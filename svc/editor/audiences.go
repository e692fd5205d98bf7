package editor

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/varlayer/pkg/logger"
	"github.com/dmitrymomot/varlayer/pkg/validator"
	"github.com/dmitrymomot/varlayer/svc/catalog"
)

const maxAudienceDetailsSize = 64 << 10

// AudienceParams carries the editable fields of an audience.
type AudienceParams struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

// Validate requires a name and caps details at 64 KiB.
func (p AudienceParams) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", p.Name),
		validator.MaxLenString("name", p.Name, maxNameLen),
		validator.MaxBytes("details", p.Details, maxAudienceDetailsSize),
	)
}

func (p AudienceParams) clean() AudienceParams {
	p.Name = cleanName(p.Name)
	return p
}

// ListAudiences returns the project's audiences, most recently updated first.
func (s *Service) ListAudiences(ctx context.Context, accountID, projectID uuid.UUID) ([]catalog.Audience, error) {
	return s.store.ListAudiences(ctx, accountID, projectID)
}

// CreateAudience adds an audience to the project.
func (s *Service) CreateAudience(ctx context.Context, accountID, projectID uuid.UUID, p AudienceParams) (catalog.Audience, error) {
	p = p.clean()
	if err := p.Validate(); err != nil {
		return catalog.Audience{}, err
	}
	a, err := s.store.CreateAudience(ctx, accountID, projectID, p.Name, p.Details)
	if err != nil {
		return catalog.Audience{}, err
	}
	s.log.DebugContext(ctx, "audience created", logger.AccountID(accountID), logger.ProjectID(projectID), logger.AudienceID(a.ID))
	return a, nil
}

// UpdateAudience replaces both the name and the details.
func (s *Service) UpdateAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID, p AudienceParams) (catalog.Audience, error) {
	p = p.clean()
	if err := p.Validate(); err != nil {
		return catalog.Audience{}, err
	}
	return s.store.UpdateAudience(ctx, accountID, projectID, audienceID, p.Name, p.Details)
}

// DeleteAudience removes the audience. Templates are not affected.
func (s *Service) DeleteAudience(ctx context.Context, accountID, projectID, audienceID uuid.UUID) error {
	if err := s.store.DeleteAudience(ctx, accountID, projectID, audienceID); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "audience deleted", logger.AccountID(accountID), logger.ProjectID(projectID), logger.AudienceID(audienceID))
	return nil
}
