package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students []*model.Student // 挿入順
	nextID   uint
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{nextID: 1}
}

func (m *mockStudentRepo) find(cardID string) *model.Student {
	for _, st := range m.students {
		if st.CardID == cardID {
			return st
		}
	}
	return nil
}

func (m *mockStudentRepo) GetByCardID(_ context.Context, cardID string) (*model.Student, error) {
	if st := m.find(cardID); st != nil {
		return st, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByStudentID(_ context.Context, studentID string) (*model.Student, error) {
	for _, st := range m.students {
		if st.StudentID == studentID {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if m.find(student.CardID) != nil {
		return fmt.Errorf("UNIQUE constraint failed: students.card_id")
	}
	m.insert(student)
	return nil
}

func (m *mockStudentRepo) CreateOrIgnore(_ context.Context, student *model.Student) error {
	if m.find(student.CardID) != nil {
		return nil
	}
	m.insert(student)
	return nil
}

func (m *mockStudentRepo) CreateOrReplace(_ context.Context, student *model.Student) error {
	if existing := m.find(student.CardID); existing != nil {
		existing.StudentID = student.StudentID
		existing.UpdatedAt = time.Now()
		return nil
	}
	m.insert(student)
	return nil
}

func (m *mockStudentRepo) insert(student *model.Student) {
	student.ID = m.nextID
	m.nextID++
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	m.students = append(m.students, student)
}

func (m *mockStudentRepo) ListRegistered(_ context.Context) ([]model.Student, error) {
	var result []model.Student
	for _, st := range m.students {
		if st.StudentID != "" {
			result = append(result, *st)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []*model.Attendance // 挿入順
	nextID  uint
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{nextID: 1}
}

func (m *mockAttendanceRepo) find(sessionID int, cardID string) *model.Attendance {
	for _, rec := range m.records {
		if rec.SessionID == sessionID && rec.CardID == cardID {
			return rec
		}
	}
	return nil
}

func (m *mockAttendanceRepo) GetBySessionCard(_ context.Context, sessionID int, cardID string) (*model.Attendance, error) {
	if rec := m.find(sessionID, cardID); rec != nil {
		return rec, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) Create(_ context.Context, record *model.Attendance) error {
	if m.find(record.SessionID, record.CardID) != nil {
		return fmt.Errorf("UNIQUE constraint failed: attendance.session_id, attendance.card_id")
	}
	record.ID = m.nextID
	m.nextID++
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	m.records = append(m.records, record)
	return nil
}

func (m *mockAttendanceRepo) UpdateStudentID(_ context.Context, sessionID int, cardID, studentID string) error {
	if rec := m.find(sessionID, cardID); rec != nil {
		rec.StudentID = studentID
		rec.UpdatedAt = time.Now()
	}
	return nil
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID int) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, rec := range m.records {
		if rec.SessionID == sessionID {
			result = append(result, *rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StudentID < result[j].StudentID })
	return result, nil
}

func (m *mockAttendanceRepo) ListSessionIDs(_ context.Context) ([]int, error) {
	seen := make(map[int]bool)
	var ids []int
	for _, rec := range m.records {
		if !seen[rec.SessionID] {
			seen[rec.SessionID] = true
			ids = append(ids, rec.SessionID)
		}
	}
	return ids, nil
}
