package repository

import "gorm.io/gorm"

// Repository 全 Repository の集約
type Repository struct {
	Student    StudentRepository
	Attendance AttendanceRepository
}

// NewRepository Repository 集約を作成する
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:    NewStudentRepo(db),
		Attendance: NewAttendanceRepo(db),
	}
}
