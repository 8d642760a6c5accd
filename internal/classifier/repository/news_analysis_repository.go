package repository

import (
	"context"

	"financial-news-classifier/internal/entity"

	"gorm.io/gorm"
)

// NewsAnalysisRepository persists per-article analysis results.
type NewsAnalysisRepository interface {
	Create(ctx context.Context, record *entity.NewsAnalysisRecord) error
	FindByArticleHash(ctx context.Context, hash string) (*entity.NewsAnalysisRecord, error)
}

type newsAnalysisRepository struct {
	db *gorm.DB
}

// NewNewsAnalysisRepository creates a new instance of newsAnalysisRepository.
func NewNewsAnalysisRepository(db *gorm.DB) NewsAnalysisRepository {
	return &newsAnalysisRepository{db: db}
}

// Create stores an analysis record.
func (r *newsAnalysisRepository) Create(ctx context.Context, record *entity.NewsAnalysisRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByArticleHash returns the most recent stored analysis for an article
// hash, or nil when none exists.
func (r *newsAnalysisRepository) FindByArticleHash(ctx context.Context, hash string) (*entity.NewsAnalysisRecord, error) {
	var record entity.NewsAnalysisRecord
	err := r.db.WithContext(ctx).
		Where("article_hash = ?", hash).
		Order("created_at DESC").
		First(&record).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
