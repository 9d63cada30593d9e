package model

import "time"

// ForgotCardMark カード忘れ登録時に forgot_card 列へ入れる印
const ForgotCardMark = "FORGOT"

// Attendance 出席記録 — attendance テーブル
// (session_id, card_id) の組で高々1行（UNIQUE インデックスで保証）
// student_id はカード読み取り時点の解決結果を非正規化して保持する
type Attendance struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"                                                json:"id"`
	SessionID  int       `gorm:"not null;uniqueIndex:idx_attendance_session_card,priority:1"             json:"session_id"`
	CardID     string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_attendance_session_card,priority:2" json:"card_id"`
	StudentID  string    `gorm:"type:varchar(32);not null;default:''"                                    json:"student_id"`
	ForgotCard string    `gorm:"type:varchar(32);not null;default:''"                                    json:"forgot_card"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                      json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                      json:"updated_at"`
}

// TableName テーブル名を指定する
func (Attendance) TableName() string { return "attendance" }
