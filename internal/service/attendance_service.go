package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nagatani/simple-attendance-with-pasori/internal/dto"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
)

// ── 出席モジュール業務エラー ──

var (
	// ErrAlreadyAttended カード忘れ登録で同じ講義回に既に記録がある
	ErrAlreadyAttended = errors.New("出席登録済みです。")
)

// TapStatus カード読み取り1回分の処理結果
type TapStatus string

const (
	// TapRecorded 新規に出席を記録した
	TapRecorded TapStatus = "recorded"
	// TapAlreadyRecorded 同じ講義回に記録済みのため何もしなかった
	TapAlreadyRecorded TapStatus = "already_recorded"
	// TapNeedsRegistration 未知のカード。呼び出し側で学籍番号を登録してから再読み取りする
	TapNeedsRegistration TapStatus = "needs_registration"
)

// TapResult カード読み取り経路（対話モード）の結果
type TapResult struct {
	Status    TapStatus
	StudentID string
}

// AttendanceService 出席登録業務インターフェース
//
// カード読み取り1回分の遷移:
//
//	カード検索 → {既知, 未知} → 出席検索 → {登録済み, 新規記録}
//
// 登録済み記録の扱いは経路で異なる:
//   - Tap（カードリーダー経路）は何もしない
//   - Attend（HTTP 経路）は student_id と updated_at を更新する（訂正扱い）
type AttendanceService interface {
	// Attend HTTP 経路の出席登録。未知カードは ErrCardNotRegistered
	Attend(ctx context.Context, sessionID int, cardID string) (string, error)
	// Tap カードリーダー経路の出席登録。未知カードは TapNeedsRegistration を返す
	Tap(ctx context.Context, sessionID int, cardID string) (*TapResult, error)
	// RegisterCard カードと学籍番号を登録し、その講義回の出席記録も作成する
	RegisterCard(ctx context.Context, sessionID int, cardID, studentID string) error
	// Forgot カード忘れの出席登録。マッピングがなければ学籍番号をカードIDとして代用する。
	// 同じ講義回に記録済みなら既存記録には触れず ErrAlreadyAttended を返す
	Forgot(ctx context.Context, sessionID int, studentID string) (string, error)
	// ListAttendees 講義回の出席者を一覧する
	ListAttendees(ctx context.Context, sessionID int) ([]dto.StudentPair, error)
}

type attendanceService struct {
	repo     *repository.Repository
	registry RegistryService
	logger   *zap.Logger
}

// NewAttendanceService AttendanceService インスタンスを作成する
func NewAttendanceService(repo *repository.Repository, registry RegistryService, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		repo:     repo,
		registry: registry,
		logger:   logger,
	}
}

// ────────────────────── Attend ──────────────────────

func (s *attendanceService) Attend(ctx context.Context, sessionID int, cardID string) (string, error) {
	studentID, err := s.registry.Resolve(ctx, cardID)
	if err != nil {
		return "", err
	}

	// 毎回ストレージを読み直してから create/update を判断する
	_, err = s.repo.Attendance.GetBySessionCard(ctx, sessionID, cardID)
	switch {
	case err == nil:
		// 記録済み: 訂正として student_id と updated_at を更新する
		if err := s.repo.Attendance.UpdateStudentID(ctx, sessionID, cardID, studentID); err != nil {
			s.logger.Error("出席記録の更新に失敗しました", zap.Error(err))
			return "", err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := &model.Attendance{
			SessionID: sessionID,
			CardID:    cardID,
			StudentID: studentID,
		}
		if err := s.repo.Attendance.Create(ctx, record); err != nil {
			s.logger.Error("出席記録の作成に失敗しました", zap.Error(err))
			return "", err
		}
	default:
		s.logger.Error("出席記録の検索に失敗しました", zap.Error(err))
		return "", err
	}

	s.logger.Info("出席を登録しました",
		zap.Int("session_id", sessionID),
		zap.String("card_id", cardID),
		zap.String("student_id", studentID),
	)
	return studentID, nil
}

// ────────────────────── Tap ──────────────────────

func (s *attendanceService) Tap(ctx context.Context, sessionID int, cardID string) (*TapResult, error) {
	studentID, err := s.registry.Resolve(ctx, cardID)
	if err != nil {
		if errors.Is(err, ErrCardNotRegistered) {
			// サービス層では入力待ちでブロックせず、型付きの結果で呼び出し側に返す
			return &TapResult{Status: TapNeedsRegistration}, nil
		}
		return nil, err
	}

	_, err = s.repo.Attendance.GetBySessionCard(ctx, sessionID, cardID)
	switch {
	case err == nil:
		return &TapResult{Status: TapAlreadyRecorded, StudentID: studentID}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 未記録: 新規作成
	default:
		s.logger.Error("出席記録の検索に失敗しました", zap.Error(err))
		return nil, err
	}

	record := &model.Attendance{
		SessionID: sessionID,
		CardID:    cardID,
		StudentID: studentID,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		s.logger.Error("出席記録の作成に失敗しました", zap.Error(err))
		return nil, err
	}

	return &TapResult{Status: TapRecorded, StudentID: studentID}, nil
}

// ────────────────────── RegisterCard ──────────────────────

func (s *attendanceService) RegisterCard(ctx context.Context, sessionID int, cardID, studentID string) error {
	if err := s.registry.Register(ctx, cardID, studentID); err != nil {
		return err
	}

	record := &model.Attendance{
		SessionID: sessionID,
		CardID:    cardID,
		StudentID: studentID,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		s.logger.Error("出席記録の作成に失敗しました", zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Forgot ──────────────────────

func (s *attendanceService) Forgot(ctx context.Context, sessionID int, studentID string) (string, error) {
	// 学籍番号から既存カードを引く。未登録なら学籍番号そのものをカードIDとして代用する
	cardID := studentID
	student, err := s.repo.Student.GetByStudentID(ctx, studentID)
	switch {
	case err == nil:
		cardID = student.CardID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// マッピングなし: 代用IDのまま進む。後日実カードで登録しても別カードIDとして扱われる
	default:
		s.logger.Error("カード台帳の検索に失敗しました", zap.Error(err))
		return "", err
	}

	_, err = s.repo.Attendance.GetBySessionCard(ctx, sessionID, cardID)
	switch {
	case err == nil:
		// 既存記録は上書きしない
		return cardID, ErrAlreadyAttended
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		s.logger.Error("出席記録の検索に失敗しました", zap.Error(err))
		return "", err
	}

	record := &model.Attendance{
		SessionID:  sessionID,
		CardID:     cardID,
		StudentID:  studentID,
		ForgotCard: model.ForgotCardMark,
	}
	if err := s.repo.Attendance.Create(ctx, record); err != nil {
		s.logger.Error("出席記録の作成に失敗しました", zap.Error(err))
		return "", err
	}

	s.logger.Info("カード忘れの出席を登録しました",
		zap.Int("session_id", sessionID),
		zap.String("card_id", cardID),
		zap.String("student_id", studentID),
	)
	return cardID, nil
}

// ────────────────────── ListAttendees ──────────────────────

func (s *attendanceService) ListAttendees(ctx context.Context, sessionID int) ([]dto.StudentPair, error) {
	records, err := s.repo.Attendance.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("出席者一覧の取得に失敗しました", zap.Error(err))
		return nil, err
	}

	pairs := make([]dto.StudentPair, 0, len(records))
	for _, rec := range records {
		pairs = append(pairs, dto.StudentPair{
			CardID:    rec.CardID,
			StudentID: rec.StudentID,
		})
	}
	return pairs, nil
}
