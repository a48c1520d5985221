package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"github.com/Rajesh001100/cultural/internal/auth"
	"github.com/Rajesh001100/cultural/internal/dto"
	"github.com/Rajesh001100/cultural/internal/mailer"
	"github.com/Rajesh001100/cultural/internal/model"
	"github.com/Rajesh001100/cultural/internal/payment"
	"github.com/Rajesh001100/cultural/internal/repo"
	"github.com/Rajesh001100/cultural/pkg/validator"
)

var (
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrMissingEventRef   = errors.New("event title or event id is required")
)

// OrderCreator is the slice of the payment gateway the workflow needs.
type OrderCreator interface {
	CreateOrder(amountMajorUnits int, currency, receipt string) (*payment.Order, error)
	KeyID() string
}

// Publisher enqueues ticket-email jobs after a PAID transition commits.
type Publisher interface {
	Publish(message []byte) error
}

type Config struct {
	JWTSecret       string
	AdminUsername   string
	AdminPassword   string
	GatewaySecret   string
	DefaultCurrency string
}

type Service interface {
	GetAllEvents(ctx *ginext.Context)
	Register(ctx *ginext.Context)
	CreateOrder(ctx *ginext.Context)
	VerifyPayment(ctx *ginext.Context)
	Contact(ctx *ginext.Context)
	GetConfig(ctx *ginext.Context)
	AdminLogin(ctx *ginext.Context)
	GetAllRegistrations(ctx *ginext.Context)
	CreateEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)
}

type service struct {
	repo    repo.Repository
	log     *zerolog.Logger
	rbt     Publisher
	gateway OrderCreator
	mail    *mailer.Mailer
	cfg     Config
}

func NewService(repo repo.Repository, logger *zerolog.Logger, rbt Publisher, gateway OrderCreator, mail *mailer.Mailer, cfg Config) Service {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "INR"
	}
	return &service{
		repo:    repo,
		log:     logger,
		rbt:     rbt,
		gateway: gateway,
		mail:    mail,
		cfg:     cfg,
	}
}

func (s *service) GetAllEvents(ctx *ginext.Context) {
	events, err := s.repo.GetAllEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		dto.InternalServerError(ctx)
		return
	}
	dto.SuccessResponse(ctx, events)
}

func (s *service) Register(ctx *ginext.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	id, err := s.createRegistration(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingEventRef):
			dto.BadResponseError(ctx, dto.FieldIncorrect, "Please fill all required fields")
			return
		case errors.Is(err, repo.ErrEventNotFound):
			dto.EventNotFoundError(ctx)
			return
		default:
			s.log.Error().Err(err).Msg("failed to create registration")
			dto.InternalServerError(ctx)
			return
		}
	}

	s.log.Info().Int64("registration_id", id).Str("event", req.Event).Msg("registration initiated")

	dto.SuccessCreatedResponse(ctx, dto.RegistrationCreatedResponse{
		Message:        "Registration initiated.",
		RegistrationID: id,
		Amount:         req.Amount,
	})
}

// createRegistration persists a PENDING row. The denormalized event title
// wins when supplied; the id lookup runs only when the title is absent.
func (s *service) createRegistration(ctx context.Context, req dto.RegisterRequest) (int64, error) {
	title := req.Event
	if title == "" {
		if req.EventID == 0 {
			return 0, ErrMissingEventRef
		}
		event, err := s.repo.GetEventByID(ctx, req.EventID)
		if err != nil {
			return 0, err
		}
		title = event.Title
	}

	reg := &model.Registration{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Year:        req.Year,
		Department:  req.Department,
		RollNo:      req.RollNo,
		College:     req.College,
		Event:       title,
		TeamMembers: req.TeamMembers,
		PassType:    req.PassType,
		Amount:      req.Amount,
	}

	return s.repo.CreateRegistration(ctx, reg)
}

func (s *service) CreateOrder(ctx *ginext.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	order, err := s.createOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrRegistrationNotFound):
			dto.RegistrationNotFoundError(ctx)
			return
		case errors.Is(err, repo.ErrAlreadyPaid):
			dto.RegistrationAlreadyPaidError(ctx)
			return
		case errors.Is(err, payment.ErrGateway):
			dto.GatewayError(ctx, err.Error())
			return
		default:
			s.log.Error().Err(err).Msg("failed to create order")
			dto.InternalServerError(ctx)
			return
		}
	}

	dto.SuccessResponse(ctx, dto.OrderResponse{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	})
}

// createOrder obtains a gateway order for the amount. When the request
// names a registration, an order is refused for anything no longer
// PENDING.
func (s *service) createOrder(ctx context.Context, req dto.CreateOrderRequest) (*payment.Order, error) {
	if req.RegistrationID != 0 {
		reg, err := s.repo.GetRegistrationByID(ctx, req.RegistrationID)
		if err != nil {
			return nil, err
		}
		if reg.Status != model.StatusPending {
			return nil, repo.ErrAlreadyPaid
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	return s.gateway.CreateOrder(req.Amount, currency, req.Receipt)
}

func (s *service) VerifyPayment(ctx *ginext.Context) {
	var req dto.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	reg, err := s.confirmPayment(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSignatureMismatch):
			dto.InvalidSignatureError(ctx)
			return
		case errors.Is(err, repo.ErrRegistrationNotFound):
			dto.RegistrationNotFoundError(ctx)
			return
		case errors.Is(err, repo.ErrAlreadyPaid):
			// Idempotent: the row is PAID, nothing was rewritten and no
			// second email goes out.
			dto.SuccessResponse(ctx, dto.VerifyPaymentResponse{Success: true, Message: "Payment already verified"})
			return
		default:
			s.log.Error().Err(err).Msg("failed to verify payment")
			dto.InternalServerError(ctx)
			return
		}
	}

	s.log.Info().
		Int64("registration_id", reg.ID).
		Str("payment_id", req.PaymentID).
		Msg("payment verified, registration paid")

	dto.SuccessResponse(ctx, dto.VerifyPaymentResponse{Success: true, Message: "Payment Verified and Email Sent"})
}

// confirmPayment is the PENDING → PAID transition: signature check, then
// the locked status write, then the ticket-email enqueue. The enqueue is
// fire-and-forget; its failure never rolls back the transition.
func (s *service) confirmPayment(ctx context.Context, req dto.VerifyPaymentRequest) (*model.Registration, error) {
	if !payment.VerifySignature(req.OrderID, req.PaymentID, req.Signature, s.cfg.GatewaySecret) {
		return nil, ErrSignatureMismatch
	}

	reg, err := s.repo.MarkPaidTx(ctx, req.RegistrationID, req.PaymentID)
	if err != nil {
		return reg, err
	}

	msg := dto.TicketEmailMessage{
		RegistrationID: reg.ID,
		Email:          reg.Email,
		Name:           reg.Name,
		Event:          reg.Event,
		Amount:         reg.Amount,
		PassType:       reg.PassType,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal ticket email message")
		return reg, nil
	}
	if err := s.rbt.Publish(payload); err != nil {
		s.log.Error().Err(err).Int64("registration_id", reg.ID).Msg("failed to publish ticket email job")
	}

	return reg, nil
}

func (s *service) Contact(ctx *ginext.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	if err := s.mail.SendContact(req.Name, req.Email, req.Message); err != nil {
		s.log.Error().Err(err).Msg("failed to relay contact message")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, map[string]string{"message": "Message sent successfully!"})
}

func (s *service) GetConfig(ctx *ginext.Context) {
	dto.SuccessResponse(ctx, dto.ConfigResponse{RazorpayKey: s.gateway.KeyID()})
}

func (s *service) AdminLogin(ctx *ginext.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if req.Username != s.cfg.AdminUsername || req.Password != s.cfg.AdminPassword {
		dto.UnauthorizedError(ctx, "Invalid credentials")
		return
	}

	token, err := auth.IssueAdminToken(req.Username, s.cfg.JWTSecret, auth.TokenTTL)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to issue admin token")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Str("username", req.Username).Msg("admin logged in")
	dto.SuccessResponse(ctx, dto.AdminLoginResponse{Token: token})
}

func (s *service) GetAllRegistrations(ctx *ginext.Context) {
	regs, err := s.repo.GetAllRegistrations(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list registrations")
		dto.InternalServerError(ctx)
		return
	}

	resp := make([]dto.RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		resp = append(resp, dto.RegistrationResponse{
			ID:          r.ID,
			Name:        r.Name,
			Email:       r.Email,
			Phone:       r.Phone,
			Year:        r.Year,
			Department:  r.Department,
			RollNo:      r.RollNo,
			College:     r.College,
			Event:       r.Event,
			TeamMembers: r.TeamMembers,
			Status:      r.Status,
			PaymentID:   r.PaymentID,
			Amount:      r.Amount,
			PassType:    r.PassType,
			Timestamp:   r.Timestamp,
		})
	}

	dto.SuccessResponse(ctx, resp)
}

func (s *service) CreateEvent(ctx *ginext.Context) {
	var req dto.EventUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := eventFromRequest(req)
	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event in DB")
		dto.InternalServerError(ctx)
		return
	}

	event.ID = id
	s.log.Info().Int64("event_id", id).Str("title", event.Title).Msg("event created")
	dto.SuccessCreatedResponse(ctx, event)
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	var req dto.EventUpsertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}

	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	event := eventFromRequest(req)
	event.ID = eventID
	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to update event")
		dto.InternalServerError(ctx)
		return
	}

	dto.SuccessResponse(ctx, event)
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	eventID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid event ID")
		return
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, repo.ErrEventNotFound) {
			dto.EventNotFoundError(ctx)
			return
		}
		s.log.Error().Err(err).Msg("failed to delete event")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().Int64("event_id", eventID).Msg("event deleted")
	dto.SuccessResponse(ctx, map[string]bool{"success": true})
}

func eventFromRequest(req dto.EventUpsertRequest) *model.Event {
	fee := req.Fee
	if fee == 0 {
		fee = 250
	}
	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Fee:         fee,
		ImageColor:  req.ImageColor,
		Icon:        req.Icon,
		RuleBook:    req.RuleBook,
		Day:         req.Day,
	}
	for _, c := range req.Coordinators {
		event.Coordinators = append(event.Coordinators, model.Coordinator{
			Name:  c.Name,
			Phone: c.Phone,
			Image: c.Image,
		})
	}
	return event
}
