package model

import "time"

// Student 学生証カードと学籍番号のマッピング — students テーブル
// カード1枚につき高々1行（card_id の UNIQUE インデックスで保証）
type Student struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"                      json:"id"`
	CardID      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_students_card_id" json:"card_id"`
	StudentID   string    `gorm:"type:varchar(32);not null;default:''"          json:"student_id"`
	StudentName string    `gorm:"type:varchar(64);not null;default:''"          json:"student_name"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
}

// TableName テーブル名を指定する
func (Student) TableName() string { return "students" }
