package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
)

// StudentRepository カード・学生マッピングのデータアクセスインターフェース
type StudentRepository interface {
	GetByCardID(ctx context.Context, cardID string) (*model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	// Create 無条件 INSERT。既存カードがあれば UNIQUE 制約違反がそのまま返る
	Create(ctx context.Context, student *model.Student) error
	// CreateOrIgnore 既存カードがあれば何もしない
	CreateOrIgnore(ctx context.Context, student *model.Student) error
	// CreateOrReplace 既存カードがあれば student_id を上書きする
	CreateOrReplace(ctx context.Context, student *model.Student) error
	// ListRegistered student_id が空でないマッピングを一覧する
	ListRegistered(ctx context.Context) ([]model.Student, error)
}

// studentRepo StudentRepository の GORM 実装
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo StudentRepository インスタンスを作成する
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByCardID(ctx context.Context, cardID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) CreateOrIgnore(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}},
			DoNothing: true,
		}).
		Create(student).Error
}

func (r *studentRepo) CreateOrReplace(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"student_id", "updated_at"}),
		}).
		Create(student).Error
}

func (r *studentRepo) ListRegistered(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("student_id <> ''").
		Order("id").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}
