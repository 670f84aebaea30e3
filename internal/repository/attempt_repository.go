package repository

import (
	"errors"
	"time"

	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	// FindByID returns (nil, nil) when the attempt does not exist.
	FindByID(id string) (*model.Attempt, error)
	// FindByIDAndUserWithMock folds ownership into the lookup predicate:
	// an attempt owned by someone else is indistinguishable from a missing
	// one. The mock summary is preloaded.
	FindByIDAndUserWithMock(id, userID string) (*model.Attempt, error)
	// Finalize performs the one permitted terminal transition as a
	// conditional update guarded by the current status. It returns the
	// number of rows affected: zero means the attempt already left
	// IN_PROGRESS and the caller must treat the submission as a conflict.
	Finalize(tx *gorm.DB, attemptID string, submittedAt time.Time, timeTaken int, score, percentage float64) (int64, error)
	// FindSubmittedByUser returns the user's submitted attempts newest
	// first, with the full mock content and persisted answers preloaded
	// for score re-derivation.
	FindSubmittedByUser(userID string) ([]model.Attempt, error)
	FindByIDAndUserWithAnswers(id, userID string) (*model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByIDAndUserWithMock(id, userID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.
		Preload("Mock").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) Finalize(tx *gorm.DB, attemptID string, submittedAt time.Time, timeTaken int, score, percentage float64) (int64, error) {
	res := tx.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]any{
			"status":       model.AttemptStatusSubmitted,
			"submitted_at": submittedAt,
			"time_taken":   timeTaken,
			"score":        score,
			"percentage":   percentage,
		})
	return res.RowsAffected, res.Error
}

func contentPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Mock.Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.sort_order ASC")
		}).
		Preload("Mock.Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.sort_order ASC")
		}).
		Preload("Mock.Sections.Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.sort_order ASC")
		}).
		Preload("Answers")
}

func (r *attemptRepository) FindSubmittedByUser(userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := contentPreloads(r.db.Preload("Mock")).
		Where("user_id = ? AND status = ?", userID, model.AttemptStatusSubmitted).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindByIDAndUserWithAnswers(id, userID string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := contentPreloads(r.db.Preload("Mock")).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
