package service

import (
	"context"
	"fmt"
	"strings"

	"licenseshop/internal/license"
	"licenseshop/internal/model"
	"licenseshop/internal/repository"

	"github.com/rs/zerolog"
)

// licenseService implements LicenseService.
type licenseService struct {
	licenseRepo repository.LicenseRepository
	logger      zerolog.Logger
}

// NewLicenseService creates a new license service.
func NewLicenseService(licenseRepo repository.LicenseRepository, logger zerolog.Logger) LicenseService {
	return &licenseService{
		licenseRepo: licenseRepo,
		logger:      logger.With().Str("service", "license").Logger(),
	}
}

// GetAll retrieves the ledger with computed urgency tiers. The whole pass is
// classified against a single timestamp.
func (s *licenseService) GetAll(ctx context.Context) ([]license.ClassifiedLicense, error) {
	licenses, err := s.licenseRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get licenses")
		return nil, fmt.Errorf("failed to get licenses: %w", err)
	}
	return license.ClassifyAll(licenses, now()), nil
}

// GetByID retrieves a single ledger entry.
func (s *licenseService) GetByID(ctx context.Context, id int64) (*model.SoldLicense, error) {
	l, err := s.licenseRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("license_id", id).Msg("failed to get license")
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	if l == nil {
		return nil, model.ErrLicenseNotFound
	}
	return l, nil
}

// Create inserts a ledger entry.
func (s *licenseService) Create(ctx context.Context, input model.SoldLicenseInput) (*model.SoldLicense, error) {
	if err := validateLicenseInput(input); err != nil {
		return nil, err
	}

	l, err := s.licenseRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).
			Str("customer", input.CustomerName).
			Str("product", input.ProductName).
			Msg("failed to create license")
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	s.logger.Info().
		Int64("license_id", l.ID).
		Str("expiration", l.ExpirationDate.Format("2006-01-02")).
		Msg("license created")

	return l, nil
}

// Update replaces a ledger entry's fields.
func (s *licenseService) Update(ctx context.Context, id int64, input model.SoldLicenseInput) (*model.SoldLicense, error) {
	if err := validateLicenseInput(input); err != nil {
		return nil, err
	}

	if err := s.licenseRepo.Update(ctx, id, input); err != nil {
		if err == model.ErrLicenseNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("license_id", id).Msg("failed to update license")
		return nil, fmt.Errorf("failed to update license: %w", err)
	}

	l, err := s.licenseRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("license_id", id).Msg("failed to reload license")
		return nil, fmt.Errorf("failed to update license: %w", err)
	}
	if l == nil {
		return nil, model.ErrLicenseNotFound
	}

	s.logger.Info().Int64("license_id", id).Msg("license updated")
	return l, nil
}

// Delete removes a ledger entry.
func (s *licenseService) Delete(ctx context.Context, id int64) error {
	if err := s.licenseRepo.Delete(ctx, id); err != nil {
		if err == model.ErrLicenseNotFound {
			return err
		}
		s.logger.Error().Err(err).Int64("license_id", id).Msg("failed to delete license")
		return fmt.Errorf("failed to delete license: %w", err)
	}

	s.logger.Info().Int64("license_id", id).Msg("license deleted")
	return nil
}

// Expiring retrieves licenses with up to days days remaining, each with the
// renewal outreach message built for it.
func (s *licenseService) Expiring(ctx context.Context, days int) ([]ExpiringLicense, error) {
	licenses, err := s.licenseRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get licenses")
		return nil, fmt.Errorf("failed to get expiring licenses: %w", err)
	}

	at := now()
	expiring := license.ExpiringSoon(licenses, at, days)
	out := make([]ExpiringLicense, len(expiring))
	for i, c := range expiring {
		out[i] = ExpiringLicense{
			ClassifiedLicense: c,
			ReminderMessage:   license.ReminderMessage(c.SoldLicense, at),
		}
	}

	s.logger.Debug().
		Int("total", len(licenses)).
		Int("expiring", len(out)).
		Int("window_days", days).
		Msg("expiring licenses computed")

	return out, nil
}

func validateLicenseInput(input model.SoldLicenseInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer name is required")
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Product name is required")
	}
	if input.ExpirationDate.IsZero() {
		return model.NewDomainError(model.ErrCodeMissingField, "Expiration date is required")
	}
	return nil
}
