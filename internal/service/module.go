package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/onboarding-portal/internal/core"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// ModuleServiceOptions groups dependencies for ModuleService.
type ModuleServiceOptions struct {
	Modules core.ModuleRepository
	Logger  *slog.Logger
}

// ModuleService manages onboarding modules. Every method requires an admin actor.
type ModuleService struct {
	modules core.ModuleRepository
	logger  *slog.Logger
}

// NewModuleService constructs a new ModuleService.
func NewModuleService(opts ModuleServiceOptions) *ModuleService {
	if opts.Modules == nil {
		panic("ModuleRepository is required")
	}
	return &ModuleService{
		modules: opts.Modules,
		logger:  loggerOrDefault(opts.Logger).With("component", "modules"),
	}
}

// List returns every module in display order. Admin only; employees read
// modules through the onboarding overview.
func (s *ModuleService) List(ctx context.Context, actor *domainauth.Claims) ([]*model.Module, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	modules, err := s.modules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	return modules, nil
}

// Get returns one module. Admin only.
func (s *ModuleService) Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Module, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ValidationField("id", "module id is required")
	}
	return s.modules.GetByID(ctx, id)
}

// Create adds a module.
func (s *ModuleService) Create(
	ctx context.Context,
	actor *domainauth.Claims,
	req *model.ModuleRequest,
) (*model.Module, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	m, err := s.modules.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create module: %w", err)
	}
	s.logger.InfoContext(ctx, "module created", "module_id", m.ID, "actor", actor.Subject)
	return m, nil
}

// Update replaces a module's fields.
func (s *ModuleService) Update(
	ctx context.Context,
	actor *domainauth.Claims,
	id int64,
	req *model.ModuleRequest,
) (*model.Module, error) {
	if err := authorize(actor, adminOnly); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperrors.ValidationField("id", "module id is required")
	}
	m, err := s.modules.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update module: %w", err)
	}
	s.logger.InfoContext(ctx, "module updated", "module_id", id, "actor", actor.Subject)
	return m, nil
}

// Delete removes a module together with its progress records.
func (s *ModuleService) Delete(ctx context.Context, actor *domainauth.Claims, id int64) error {
	if err := authorize(actor, adminOnly); err != nil {
		return err
	}
	if id <= 0 {
		return apperrors.ValidationField("id", "module id is required")
	}
	if err := s.modules.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	s.logger.InfoContext(ctx, "module deleted", "module_id", id, "actor", actor.Subject)
	return nil
}
