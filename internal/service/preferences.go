// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/validators"
	"github.com/MKhiriev/go-note-sync/models"
)

type preferenceService struct {
	store     store.PreferenceStore
	validator validators.Validator
	logger    *logger.Logger
}

func NewPreferenceService(prefs store.PreferenceStore, logger *logger.Logger) ClientPreferenceService {
	return &preferenceService{
		store:     prefs,
		validator: validators.NewPreferenceValidator(),
		logger:    logger,
	}
}

func (p *preferenceService) Get(ctx context.Context, key string) (string, bool, error) {
	if err := p.validator.Validate(ctx, models.Preference{Key: key}, validators.FieldPreferenceKey); err != nil {
		return "", false, err
	}

	value, err := p.store.GetPreference(ctx, key)
	if errors.Is(err, store.ErrPreferenceNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (p *preferenceService) Set(ctx context.Context, key, value string) error {
	if err := p.validator.Validate(ctx, models.Preference{Key: key, Value: value}); err != nil {
		return err
	}
	if err := p.store.SetPreference(ctx, key, value); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}

	p.logger.Debug().Str("key", key).Str("value", value).Msg("preference updated")
	return nil
}

func (p *preferenceService) Delete(ctx context.Context, key string) error {
	if err := p.validator.Validate(ctx, models.Preference{Key: key}, validators.FieldPreferenceKey); err != nil {
		return err
	}
	if err := p.store.DeletePreference(ctx, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

func (p *preferenceService) List(ctx context.Context) ([]models.Preference, error) {
	out := make([]models.Preference, 0, len(store.UserPreferenceKeys))
	for _, key := range store.UserPreferenceKeys {
		value, ok, err := p.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, models.Preference{Key: key, Value: value})
		}
	}
	return out, nil
}
