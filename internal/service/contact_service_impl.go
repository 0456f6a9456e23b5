package service

import (
	"context"
	"log/slog"

	"github.com/buildright/backend/internal/model"
	"github.com/buildright/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo      repository.ContactRepository
	validator *Validator
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository, validator *Validator) ContactService {
	return &contactServiceImpl{repo: repo, validator: validator}
}

func (s *contactServiceImpl) Submit(ctx context.Context, raw map[string]any) (*model.ContactSubmission, error) {
	in, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	msg := &model.ContactSubmission{ContactInput: *in}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "new contact submission received",
		"id", msg.ID,
		"name", msg.Name,
		"email", msg.Email,
		"project_type", msg.ProjectType,
		"submitted_at", msg.SubmittedAt,
	)
	return msg, nil
}
