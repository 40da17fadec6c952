package service

import (
	"context"
	"fmt"

	"github.com/fjod/chess_academy/internal/domain"
)

// SaveProgress appends a puzzle or quiz result to the user's log and returns
// the whole log.
func (s *Service) SaveProgress(ctx context.Context, userID string, kind domain.ProgressType, rec domain.ProgressRecord) ([]domain.ProgressRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown progress type %q", domain.ErrValidation, kind)
	}
	if rec.Score < 0 || rec.MaxScore < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", domain.ErrValidation)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	records, err := s.loadProgress(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	rec.CompletedAt = s.now().UTC()
	records = append(records, rec)

	if err := s.setJSON(ctx, progressKey(userID, string(kind)), records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) Progress(ctx context.Context, userID string, kind domain.ProgressType) ([]domain.ProgressRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown progress type %q", domain.ErrValidation, kind)
	}
	return s.loadProgress(ctx, userID, kind)
}

func (s *Service) loadProgress(ctx context.Context, userID string, kind domain.ProgressType) ([]domain.ProgressRecord, error) {
	records := []domain.ProgressRecord{}
	if _, err := s.getJSON(ctx, progressKey(userID, string(kind)), &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ProgressRecord{}
	}
	return records, nil
}
