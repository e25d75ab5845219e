package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/lmnh_kiosk/internal/domain"
	"github.com/Gunvolt24/lmnh_kiosk/internal/ports"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/metrics"
	"github.com/Gunvolt24/lmnh_kiosk/pkg/validate"
)

var tracer = otel.Tracer("lmnh_kiosk/usecase")

// InteractionService - прикладная логика обработки сообщений киоска (без знаний о транспорте).
type InteractionService struct {
	repo      ports.InteractionRepository // запись оценок и вызовов помощи
	reporter  ports.RejectionReporter     // причины отклонения
	log       ports.Logger
	validator ports.InteractionValidator
}

// NewInteractionService - DI-конструктор.
func NewInteractionService(
	repo ports.InteractionRepository,
	reporter ports.RejectionReporter,
	log ports.Logger,
	validator ports.InteractionValidator,
) *InteractionService {
	return &InteractionService{
		repo:      repo,
		reporter:  reporter,
		log:       log,
		validator: validator,
	}
}

// HandleMessage - обработать одно сообщение из Kafka (raw JSON).
// Шаги:
//  1. декодирование в RawEvent (не JSON-объект -> validate.ErrMalformedPayload, фатально);
//  2. эхо сообщения в лог;
//  3. цепочка проверок; отказ уходит в RejectionReporter, это не ошибка;
//  4. запись оценки или вызова помощи в отдельной транзакции.
func (s *InteractionService) HandleMessage(ctx context.Context, raw []byte) (domain.Outcome, error) {
	ctx, span := tracer.Start(ctx, "interaction.handle", trace.WithSpanKind(trace.SpanKindConsumer))
	defer span.End()

	event, err := validate.DecodeEvent(raw)
	if err != nil {
		s.log.Errorf(ctx, "decode message failed err=%v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed payload")
		return 0, fmt.Errorf("decode message: %w", err)
	}
	s.log.Infof(ctx, "message received %v", map[string]any(event))

	interaction, err := s.validator.Validate(ctx, event)
	if err != nil {
		return s.reject(ctx, span, raw, err)
	}

	span.SetAttributes(
		attribute.String("interaction.kind", interaction.Kind.String()),
		attribute.Int("interaction.site", interaction.ExhibitionID),
	)

	switch interaction.Kind {
	case domain.KindHelp:
		if err := s.repo.SaveHelp(ctx, interaction.Help()); err != nil {
			s.log.Errorf(ctx, "repo.SaveHelp failed site=%d err=%v", interaction.ExhibitionID, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "save help")
			return 0, fmt.Errorf("failed to save help request: %w", err)
		}
		s.log.Infof(ctx, "help request saved site=%d type=%d", interaction.ExhibitionID, interaction.AssistanceTypeID)
		return domain.OutcomeHelpSaved, nil

	default:
		if err := s.repo.SaveRating(ctx, interaction.Rating()); err != nil {
			s.log.Errorf(ctx, "repo.SaveRating failed site=%d err=%v", interaction.ExhibitionID, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "save rating")
			return 0, fmt.Errorf("failed to save rating: %w", err)
		}
		s.log.Infof(ctx, "rating saved site=%d val=%d", interaction.ExhibitionID, interaction.Value)
		return domain.OutcomeRatingSaved, nil
	}
}

// reject - передать причину отказа в RejectionReporter.
// Ошибка, не являющаяся отказом валидации, считается фатальной.
func (s *InteractionService) reject(ctx context.Context, span trace.Span, raw []byte, err error) (domain.Outcome, error) {
	var rejection *validate.RejectionError
	if !errors.As(err, &rejection) {
		s.log.Errorf(ctx, "validator failed err=%v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "validator")
		return 0, fmt.Errorf("validate message: %w", err)
	}

	span.SetAttributes(
		attribute.String("rejection.field", rejection.Field),
		attribute.String("rejection.reason", rejection.Reason),
	)
	metrics.InteractionRejections.WithLabelValues(rejection.Field).Inc()

	if repErr := s.reporter.Report(ctx, raw, rejection.Reason); repErr != nil {
		s.log.Errorf(ctx, "reporter.Report failed err=%v", repErr)
		return 0, fmt.Errorf("report rejection: %w", repErr)
	}
	return domain.OutcomeRejected, nil
}
