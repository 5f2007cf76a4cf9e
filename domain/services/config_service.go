package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"qabum/domain/entities"
	"qabum/domain/events"
	"qabum/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type configService struct {
	configRepo     interfaces.RiskConfigRepository
	auditRepo      interfaces.ConfigAuditRepository
	eventPublisher interfaces.EventPublisher
	now            func() time.Time
}

// NewConfigService creates a new configuration resolver
func NewConfigService(configRepo interfaces.RiskConfigRepository, auditRepo interfaces.ConfigAuditRepository, eventPublisher interfaces.EventPublisher) interfaces.ConfigService {
	return &configService{
		configRepo:     configRepo,
		auditRepo:      auditRepo,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

func (s *configService) GetConfig(ctx context.Context) (*entities.RiskConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, entities.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to read risk config: %w", err)
	}

	// First use: persist the documented defaults
	defaults := entities.DefaultRiskConfig(s.now())
	if err := s.configRepo.Put(ctx, defaults, 0); err != nil {
		// A concurrent initializer may have won the insert
		if errors.Is(err, entities.ErrConfigVersionConflict) {
			return s.configRepo.Get(ctx)
		}
		return nil, fmt.Errorf("failed to initialize risk config: %w", err)
	}

	log.WithField("version", defaults.Version).Info("Initialized risk config with defaults")
	return defaults, nil
}

func (s *configService) UpdateConfig(ctx context.Context, input map[string]any, meta entities.UpdateMeta) (*entities.RiskConfig, []string, error) {
	next, validationErrs := ValidateRiskConfig(input)
	if len(validationErrs) > 0 {
		return nil, validationErrs, nil
	}

	previous, err := s.configRepo.Get(ctx)
	expectedVersion := 0
	if err == nil {
		expectedVersion = previous.Version
	} else if !errors.Is(err, entities.ErrConfigNotFound) {
		return nil, nil, fmt.Errorf("failed to read previous risk config: %w", err)
	} else {
		previous = nil
	}

	// The resolver owns version and timestamp
	next.Version = expectedVersion + 1
	next.UpdatedAt = s.now()

	if err := s.configRepo.Put(ctx, next, expectedVersion); err != nil {
		return nil, nil, err
	}

	// Audit write failures never roll back the committed config write
	entry := &entities.ConfigAuditEntry{
		Ts:        s.now(),
		Actor:     meta.Actor,
		Reason:    meta.Reason,
		UserAgent: meta.UserAgent,
		IP:        meta.IP,
		Previous:  previous,
		Next:      next,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		log.WithFields(log.Fields{
			"version": next.Version,
			"actor":   meta.Actor,
			"error":   err,
		}).Error("Failed to append config audit entry")
	}

	if err := s.eventPublisher.Publish(events.ConfigUpdatedEvent{
		PreviousVersion: expectedVersion,
		NewVersion:      next.Version,
		Actor:           meta.Actor,
		Reason:          meta.Reason,
		UpdatedAt:       next.UpdatedAt,
	}); err != nil {
		log.WithField("error", err).Warn("Failed to publish config updated event")
	}

	log.WithFields(log.Fields{
		"previousVersion": expectedVersion,
		"newVersion":      next.Version,
		"actor":           meta.Actor,
	}).Info("Risk config updated")

	return next, nil, nil
}

func (s *configService) GetAuditTrail(ctx context.Context, limit int) ([]*entities.ConfigAuditEntry, error) {
	return s.auditRepo.GetRecent(ctx, limit)
}
