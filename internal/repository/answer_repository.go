package repository

import (
	"github.com/lshigami/Axolotls/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	// BulkCreate inserts every answer row of one submission in a single
	// statement. It runs on the caller's transaction so the insert and the
	// attempt finalize commit or roll back together.
	BulkCreate(tx *gorm.DB, answers []model.Answer) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) BulkCreate(tx *gorm.DB, answers []model.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}
