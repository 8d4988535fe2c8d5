package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-sql/civil"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/calendar"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/document"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/domain"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/mapper"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/notify"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/pricing"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/repository"
	"github.com/matyldajandova/handyhands-calculator-sub001/internal/storage"
	"go.uber.org/zap"
)

// SubmissionStore persists confirmed offers.
type SubmissionStore interface {
	Create(ctx context.Context, submission *domain.Submission) error
	Delete(ctx context.Context, orderID string) error
	MarkEmailSent(ctx context.Context, orderID string, at time.Time) error
}

// RenderedOffer is an offer document ready to be served.
type RenderedOffer struct {
	OrderID     string
	Filename    string
	ContentType string
	Body        []byte
}

// OfferService renders offer documents and records submissions.
type OfferService struct {
	quotes      *QuoteService
	renderer    document.Renderer
	storage     storage.Storage
	submissions SubmissionStore
	mailer      notify.Mailer
	notifier    notify.AdminNotifier
	officeEmail string
	location    *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

// NewOfferService creates a new OfferService instance with all required dependencies
func NewOfferService(
	quotes *QuoteService,
	renderer document.Renderer,
	storage storage.Storage,
	submissions SubmissionStore,
	mailer notify.Mailer,
	notifier notify.AdminNotifier,
	officeEmail string,
	location *time.Location,
	logger *zap.Logger,
) *OfferService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if location == nil {
		location = time.UTC
	}
	return &OfferService{
		quotes:      quotes,
		renderer:    renderer,
		storage:     storage,
		submissions: submissions,
		mailer:      mailer,
		notifier:    notifier,
		officeEmail: officeEmail,
		location:    location,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock replaces the time source used for the issue date.
func (s *OfferService) WithClock(now func() time.Time) *OfferService {
	s.now = now
	return s
}

// Preview renders the offer document of a quote without recording anything.
func (s *OfferService) Preview(ctx context.Context, hash string) (*RenderedOffer, error) {
	q, err := s.quotes.Hydrate(ctx, hash)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, q, s.today())
}

// Submit merges the final details into the quote, records the submission,
// archives the rendered offer and notifies the customer and the office.
// Email and alert failures are logged and do not fail the submission.
func (s *OfferService) Submit(ctx context.Context, req domain.SubmitOfferRequest) (*domain.SubmissionDTO, error) {
	q, err := s.quotes.Update(ctx, req.UpdateQuoteRequest)
	if err != nil {
		return nil, err
	}
	contact := q.Payload.CalculationData.Contact
	if contact == nil || strings.TrimSpace(contact.Email) == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, ErrMissingEmail)
	}

	issuedOn := s.today()
	rendered, err := s.render(ctx, q, issuedOn)
	if err != nil {
		return nil, err
	}

	// The row claims the order id before the document is archived.
	key := storage.OfferKey(rendered.OrderID, fmt.Sprintf("%04d/%02d", issuedOn.Year, int(issuedOn.Month)), s.renderer.Extension())
	submission := newSubmission(q, key)
	if err := s.submissions.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicateOrderID) {
			return nil, fmt.Errorf("%w: offer %s was already submitted", ErrConflict, submission.OrderID)
		}
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}

	path, _, err := s.storage.Upload(ctx, key, rendered.ContentType, bytes.NewReader(rendered.Body))
	if err != nil {
		if delErr := s.submissions.Delete(ctx, submission.OrderID); delErr != nil {
			s.logger.Error("Failed to release order id after archive failure",
				zap.String("orderId", submission.OrderID),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to archive offer: %w", err)
	}

	log := s.logger.With(zap.String("orderId", submission.OrderID))
	log.Info("Offer submitted",
		zap.String("serviceType", submission.ServiceType),
		zap.String("documentPath", path),
	)

	if err := s.mailer.Send(ctx, s.offerEmail(q, rendered, req.SendCopy)); err != nil {
		log.Warn("Failed to send offer email", zap.Error(err))
	} else {
		sentAt := s.now().UTC()
		if err := s.submissions.MarkEmailSent(ctx, submission.OrderID, sentAt); err != nil {
			log.Warn("Failed to record email delivery", zap.Error(err))
		} else {
			submission.EmailSentAt = &sentAt
		}
	}

	if err := s.notifier.NotifySubmission(ctx, s.alert(q, submission)); err != nil {
		log.Warn("Failed to notify office", zap.Error(err))
	}

	dto := mapper.ToSubmissionDTO(submission)
	return &dto, nil
}

func (s *OfferService) today() civil.Date {
	return civil.DateOf(s.now().In(s.location))
}

func (s *OfferService) render(ctx context.Context, q *Quote, issuedOn civil.Date) (*RenderedOffer, error) {
	offer := mapper.ConvertFormDataToOfferData(q.Payload, q.Config, q.Details, issuedOn)
	body, err := s.renderer.Render(ctx, offer)
	if err != nil {
		return nil, fmt.Errorf("failed to render offer: %w", err)
	}
	return &RenderedOffer{
		OrderID:     offer.OrderID,
		Filename:    offer.OrderID + s.renderer.Extension(),
		ContentType: s.renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *OfferService) offerEmail(q *Quote, rendered *RenderedOffer, sendCopy bool) notify.Email {
	to := []string{s.officeEmail}
	if sendCopy {
		to = append(to, q.Payload.CalculationData.Contact.Email)
	}
	return notify.Email{
		To:       to,
		Subject:  fmt.Sprintf("Nabídka %s: %s", rendered.OrderID, q.Config.Title),
		HTMLBody: string(rendered.Body),
		Attachments: []notify.Attachment{{
			Filename:    rendered.Filename,
			ContentType: rendered.ContentType,
			Data:        rendered.Body,
		}},
	}
}

func (s *OfferService) alert(q *Quote, sub *domain.Submission) notify.SubmissionAlert {
	calc := q.Payload.CalculationData
	unit := mapper.CurrencySymbol(sub.Currency) + "/měsíc"
	price := pricing.RoundForDisplay(sub.TotalPrice)
	if sub.HourlyRate != nil {
		unit = mapper.CurrencySymbol(sub.Currency) + "/hod"
		price = *sub.HourlyRate
	}
	alert := notify.SubmissionAlert{
		OrderID:      sub.OrderID,
		ServiceTitle: sub.ServiceTitle,
		CustomerName: sub.CustomerName,
		Email:        sub.CustomerEmail,
		Phone:        sub.CustomerPhone,
		PostalCode:   sub.PostalCode,
		Price:        document.FormatPrice(price) + " " + unit,
		DocumentPath: sub.DocumentPath,
	}
	if calc.StartDate != nil {
		alert.StartDate = calendar.FormatCzech(*calc.StartDate)
	}
	return alert
}

func newSubmission(q *Quote, documentPath string) *domain.Submission {
	p := q.Payload
	calc := p.CalculationData
	contact := calc.Contact

	sub := &domain.Submission{
		OrderID:              calc.OrderID,
		ServiceType:          p.ServiceType,
		ServiceTitle:         q.Config.Title,
		CustomerName:         contact.FullName(),
		CustomerEmail:        strings.TrimSpace(contact.Email),
		CustomerPhone:        contact.Phone,
		CompanyName:          contact.CompanyName,
		CompanyID:            contact.CompanyID,
		PostalCode:           contact.PostalCode,
		Region:               calc.Region,
		RegularPrice:         calc.RegularCleaningPrice,
		TotalPrice:           calc.TotalMonthlyPrice,
		HourlyRate:           calc.HourlyRate,
		Currency:             p.Currency,
		OriginFormNote:       calc.OriginFormNote,
		ConfirmationStepNote: calc.ConfirmationStepNote,
		Hash:                 q.Hash,
		DocumentPath:         documentPath,
	}
	if q.Config.PostalCodeField != "" {
		if zip := calc.FormData.Get(q.Config.PostalCodeField); zip != "" {
			sub.PostalCode = zip
		}
	}
	if calc.StartDate != nil {
		start := calc.StartDate.In(time.UTC)
		sub.StartDate = &start
	}
	return sub
}
