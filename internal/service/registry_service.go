package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Nagatani/simple-attendance-with-pasori/config"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/dto"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/model"
	"github.com/Nagatani/simple-attendance-with-pasori/internal/repository"
)

// ── カード台帳モジュール業務エラー ──

var (
	// ErrCardNotRegistered カードに対応する学籍番号マッピングが存在しない
	ErrCardNotRegistered = errors.New("学生証のバーコードを読み取るか、学籍番号を入力してください。")
)

// RegistryService カード台帳（カードID ↔ 学籍番号マッピング）業務インターフェース
type RegistryService interface {
	// Resolve カードIDから学籍番号を解決する。マッピングがなければ ErrCardNotRegistered
	Resolve(ctx context.Context, cardID string) (string, error)
	// Register カードと学籍番号のマッピングを登録する。既存カードの扱いは
	// register.duplicate_policy の設定に従う（insert / ignore / replace）
	Register(ctx context.Context, cardID, studentID string) error
	// ListStudents 学籍番号が入っているマッピングを一覧する
	ListStudents(ctx context.Context) ([]dto.StudentPair, error)
}

type registryService struct {
	repo   *repository.Repository
	policy string
	logger *zap.Logger
}

// NewRegistryService RegistryService インスタンスを作成する
func NewRegistryService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) RegistryService {
	return &registryService{
		repo:   repo,
		policy: cfg.Register.DuplicatePolicy,
		logger: logger,
	}
}

func (s *registryService) Resolve(ctx context.Context, cardID string) (string, error) {
	student, err := s.repo.Student.GetByCardID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCardNotRegistered
		}
		s.logger.Error("カード台帳の検索に失敗しました", zap.String("card_id", cardID), zap.Error(err))
		return "", err
	}
	return student.StudentID, nil
}

func (s *registryService) Register(ctx context.Context, cardID, studentID string) error {
	student := &model.Student{
		CardID:    cardID,
		StudentID: studentID,
	}

	var err error
	switch s.policy {
	case config.PolicyIgnore:
		err = s.repo.Student.CreateOrIgnore(ctx, student)
	case config.PolicyReplace:
		err = s.repo.Student.CreateOrReplace(ctx, student)
	default:
		err = s.repo.Student.Create(ctx, student)
	}
	if err != nil {
		s.logger.Error("カード登録に失敗しました",
			zap.String("card_id", cardID),
			zap.String("student_id", studentID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("カードを登録しました",
		zap.String("card_id", cardID),
		zap.String("student_id", studentID),
	)
	return nil
}

func (s *registryService) ListStudents(ctx context.Context) ([]dto.StudentPair, error) {
	students, err := s.repo.Student.ListRegistered(ctx)
	if err != nil {
		s.logger.Error("学生一覧の取得に失敗しました", zap.Error(err))
		return nil, err
	}

	pairs := make([]dto.StudentPair, 0, len(students))
	for _, st := range students {
		pairs = append(pairs, dto.StudentPair{
			CardID:    st.CardID,
			StudentID: st.StudentID,
		})
	}
	return pairs, nil
}
