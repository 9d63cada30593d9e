package dto

// ── 出席モジュール DTO ──
// レスポンスは status 判別子を持つフラットな JSON（フォーム POST の静的フロントエンドと互換）

// AttendRequest 出席登録リクエスト（カード読み取り／手入力）
type AttendRequest struct {
	CardID string `form:"card_id" json:"card_id" binding:"required"`
}

// AttendResponse 出席登録レスポンス
type AttendResponse struct {
	Status    string `json:"status"`
	StudentID string `json:"student_id"`
	Message   string `json:"message"`
}

// ForgotRequest カード忘れ出席登録リクエスト
type ForgotRequest struct {
	StudentID string `form:"student_id" json:"student_id" binding:"required"`
}

// ForgotResponse カード忘れ出席登録レスポンス
type ForgotResponse struct {
	Status  string `json:"status"`
	CardID  string `json:"card_id"`
	Message string `json:"message"`
}

// SessionResponse 現在の講義回の情報
type SessionResponse struct {
	SessionID int    `json:"session_id"`
	Title     string `json:"title"`
}
