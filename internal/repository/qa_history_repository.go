package repository

import (
	"fmt"

	"gorm.io/gorm"

	"smartfaq/internal/model"
)

// QAHistoryRepository is an append-only log of answered questions.
type QAHistoryRepository struct {
	db *gorm.DB
}

func NewQAHistoryRepository(db *gorm.DB) *QAHistoryRepository {
	return &QAHistoryRepository{db: db}
}

func (r *QAHistoryRepository) Create(record *model.QARecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create qa record failed: %w", err)
	}
	return nil
}

func (r *QAHistoryRepository) ListRecent(limit int) ([]model.QARecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var records []model.QARecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list qa records failed: %w", err)
	}
	return records, nil
}
