package service

import (
	"encoding/json"
	"fmt"

	"wordsheet/internal/domain"
	"wordsheet/internal/repository"

	"go.uber.org/zap"
)

// SheetKey is the storage key the sheet snapshot lives under
const SheetKey = "word-sheet-data"

// SheetService reads and writes full sheet snapshots
type SheetService struct {
	kv     repository.KVRepository
	logger *zap.Logger
}

// NewSheetService creates a new sheet service
func NewSheetService(kv repository.KVRepository, logger *zap.Logger) *SheetService {
	return &SheetService{kv: kv, logger: logger}
}

// Load returns the stored rows. A missing or unreadable snapshot yields the
// seed rows instead.
func (s *SheetService) Load() ([]domain.WordEntry, error) {
	raw, ok, err := s.kv.Get(SheetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load sheet: %w", err)
	}

	if !ok {
		s.logger.Info("No saved sheet, starting from seed data")
		return domain.SeedEntries(), nil
	}

	var rows []domain.WordEntry
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.logger.Warn("Failed to parse saved sheet, starting from seed data", zap.Error(err))
		return domain.SeedEntries(), nil
	}

	s.logger.Info("Sheet loaded", zap.Int("rows", len(rows)))
	return rows, nil
}

// Save writes rows as one snapshot
func (s *SheetService) Save(rows []domain.WordEntry) error {
	if rows == nil {
		rows = []domain.WordEntry{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	if err := s.kv.Put(SheetKey, string(data)); err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	return nil
}
