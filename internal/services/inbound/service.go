// Package inbound orchestrates one simulated channel message end to end:
// quiet-hours gate, intent classification, then the intent-specific action.
package inbound

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/quickdesk/concierge/internal/common"
	"github.com/quickdesk/concierge/internal/interfaces"
	"github.com/quickdesk/concierge/internal/models"
	"github.com/quickdesk/concierge/internal/services/intent"
	"github.com/quickdesk/concierge/internal/services/quiet"
	"github.com/quickdesk/concierge/internal/services/rank"
	"github.com/quickdesk/concierge/internal/services/when"
)

const (
	replyEmptyKnowledge = "I couldn't find any knowledge for this tenant yet. Try ingesting the website first."
	replyNoMatch        = "Sorry, I couldn't find a relevant passage for that question right now"
)

// ErrInvalidMessage is returned when the inbound payload fails validation
var ErrInvalidMessage = errors.New("invalid inbound message")

type service struct {
	storage   interfaces.StorageManager
	knowledge interfaces.KnowledgeService
	gate      *quiet.Gate
	config    *common.Config
	validate  *validator.Validate
	logger    arbor.ILogger

	// now is swappable for tests
	now func() time.Time
}

// NewService creates the inbound orchestrator
func NewService(storage interfaces.StorageManager, knowledge interfaces.KnowledgeService, gate *quiet.Gate, config *common.Config, logger arbor.ILogger) interfaces.InboundService {
	return &service{
		storage:   storage,
		knowledge: knowledge,
		gate:      gate,
		config:    config,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// HandleInbound processes one message. The quiet-hours gate preempts all
// intent handling; otherwise exactly one intent branch runs.
func (s *service) HandleInbound(ctx context.Context, msg *models.InboundMessage) (*models.InboundReply, error) {
	if err := s.validate.Struct(msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	if _, err := s.storage.TenantStorage().GetTenant(ctx, msg.TenantID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load tenant %s: %w", msg.TenantID, err)
	}

	now := s.now()

	if s.gate.IsWithin(now) {
		s.logger.Info().Str("tenant_id", msg.TenantID).Msg("Inbound message deferred by quiet hours")
		return &models.InboundReply{
			Kind:  models.ReplyKindQuiet,
			Reply: s.gate.Message(),
		}, nil
	}

	classified := intent.Classify(msg.Text)

	s.logger.Info().
		Str("tenant_id", msg.TenantID).
		Str("from", msg.From).
		Str("intent", string(classified)).
		Msg("Inbound message classified")

	switch classified {
	case intent.IntentBooking:
		return s.handleBooking(ctx, msg, now)
	case intent.IntentPayment:
		return s.handlePayment(ctx, msg)
	case intent.IntentFAQ:
		return s.handleFAQ(ctx, msg)
	default:
		return nil, fmt.Errorf("unhandled intent %q", classified)
	}
}

func (s *service) handleFAQ(ctx context.Context, msg *models.InboundMessage) (*models.InboundReply, error) {
	count, err := s.storage.ChunkStorage().CountChunks(ctx, msg.TenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count chunks for tenant %s: %w", msg.TenantID, err)
	}
	if count == 0 {
		return &models.InboundReply{
			Kind:  models.ReplyKindFAQ,
			Reply: replyEmptyKnowledge,
		}, nil
	}

	results, err := s.knowledge.Search(ctx, msg.TenantID, msg.Text, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}
	if len(results) == 0 {
		return &models.InboundReply{
			Kind:  models.ReplyKindFAQ,
			Reply: replyNoMatch,
		}, nil
	}

	best := results[0]
	snippet := rank.ExtractSnippet(best.Text, msg.Text, s.config.Search.SnippetMaxLen)

	return &models.InboundReply{
		Kind:    models.ReplyKindFAQ,
		Reply:   snippet,
		ChunkID: best.ID,
	}, nil
}

func (s *service) handleBooking(ctx context.Context, msg *models.InboundMessage, now time.Time) (*models.InboundReply, error) {
	start := when.Parse(msg.Text, now)
	serviceName := intent.ExtractService(msg.Text)

	booking := &models.Booking{
		TenantID:      msg.TenantID,
		Service:       serviceName,
		StartTime:     start,
		CustomerPhone: msg.From,
		Source:        models.BookingSourceWhatsApp,
	}

	if err := s.storage.BookingStorage().CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info().
		Str("tenant_id", msg.TenantID).
		Str("booking_id", booking.ID).
		Str("service", serviceName).
		Msg("Booking created")

	return &models.InboundReply{
		Kind:      models.ReplyKindBooking,
		Reply:     fmt.Sprintf("Booked %s at %s", serviceName, start.Format("2006-01-02 15:04")),
		BookingID: booking.ID,
		Start:     &start,
	}, nil
}

func (s *service) handlePayment(ctx context.Context, msg *models.InboundMessage) (*models.InboundReply, error) {
	invoice := &models.Invoice{
		TenantID:      msg.TenantID,
		Amount:        s.config.Payments.Amount,
		Currency:      s.config.Payments.Currency,
		Status:        models.InvoiceStatusPending,
		CustomerPhone: msg.From,
	}

	if err := s.storage.InvoiceStorage().CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	paylink := fmt.Sprintf("%s/pay/%s", s.config.Payments.BaseURL, invoice.ID)
	if err := s.storage.InvoiceStorage().UpdateInvoicePaylink(ctx, invoice.ID, paylink); err != nil {
		return nil, fmt.Errorf("failed to set invoice paylink: %w", err)
	}

	s.logger.Info().
		Str("tenant_id", msg.TenantID).
		Str("invoice_id", invoice.ID).
		Str("paylink", paylink).
		Msg("Invoice created")

	return &models.InboundReply{
		Kind:      models.ReplyKindPayment,
		Reply:     fmt.Sprintf("You can pay securely here: %s", paylink),
		InvoiceID: invoice.ID,
		Paylink:   paylink,
	}, nil
}
