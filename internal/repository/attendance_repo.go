package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
)

// AttendanceRepository 出席記録のデータアクセスインターフェース
type AttendanceRepository interface {
	GetBySessionCard(ctx context.Context, sessionID int, cardID string) (*model.Attendance, error)
	Create(ctx context.Context, record *model.Attendance) error
	// UpdateStudentID 既存記録の student_id と updated_at を更新する
	UpdateStudentID(ctx context.Context, sessionID int, cardID, studentID string) error
	// ListBySession 講義回の出席記録を学籍番号順に一覧する
	ListBySession(ctx context.Context, sessionID int) ([]model.Attendance, error)
	// ListSessionIDs 記録が存在する講義回を GROUP BY の出現順で一覧する
	ListSessionIDs(ctx context.Context) ([]int, error)
}

// attendanceRepo AttendanceRepository の GORM 実装
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo AttendanceRepository インスタンスを作成する
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) GetBySessionCard(ctx context.Context, sessionID int, cardID string) (*model.Attendance, error) {
	var record model.Attendance
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND card_id = ?", sessionID, cardID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *attendanceRepo) Create(ctx context.Context, record *model.Attendance) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *attendanceRepo) UpdateStudentID(ctx context.Context, sessionID int, cardID, studentID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("session_id = ? AND card_id = ?", sessionID, cardID).
		Update("student_id", studentID).Error
}

func (r *attendanceRepo) ListBySession(ctx context.Context, sessionID int) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("student_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *attendanceRepo) ListSessionIDs(ctx context.Context) ([]int, error) {
	var sessionIDs []int
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Group("session_id").
		Pluck("session_id", &sessionIDs).Error
	if err != nil {
		return nil, err
	}
	return sessionIDs, nil
}
