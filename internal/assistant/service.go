package assistant

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/core/common/validation"
	"github.com/frahmantamala/finflow/internal/finance"
)

const MaxQuestionLength = 500

type SnapshotProvider interface {
	Get(ctx context.Context, userID string) (finance.Snapshot, error)
}

type Service struct {
	snapshots SnapshotProvider
	chatter   Chatter
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires the assistant. A nil chatter means AI is disabled and every question is
// answered with ErrAssistantUnavailable.
func NewService(snapshots SnapshotProvider, chatter Chatter, logger *slog.Logger) *Service {
	return &Service{
		snapshots: snapshots,
		chatter:   chatter,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Ask(ctx context.Context, userID string, dto AskDTO) (*AskResponse, error) {
	question := strings.TrimSpace(dto.Question)

	v := validation.NewValidator()
	v.Field("question", question).
		Required(errors.ErrCodeValidationFailed).
		MaxLength(MaxQuestionLength, errors.ErrCodeValidationFailed)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	if s.chatter == nil {
		return nil, errors.ErrAssistantUnavailable
	}

	snap, err := s.snapshots.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	answer, err := s.chatter.Chat(ctx, ChatRequest{
		Question: question,
		Context:  BuildContext(snap, s.now()),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "assistant chat failed", "error", err, "user_id", userID)
		return nil, errors.ErrAssistantFailed.WithCause(err)
	}

	return &AskResponse{Answer: answer}, nil
}
