package dto

import (
	"time"

	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound           = "EVENT_NOT_FOUND"
	RegistrationNotFound    = "REGISTRATION_NOT_FOUND"
	RegistrationAlreadyPaid = "REGISTRATION_ALREADY_PAID"
	InvalidSignature        = "INVALID_SIGNATURE"
	GatewayFailure          = "GATEWAY_ERROR"
	Unauthorized            = "UNAUTHORIZED"
)

type RegisterRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required"`
	Year        string   `json:"year" validate:"required"`
	Department  string   `json:"department" validate:"required"`
	RollNo      string   `json:"roll_no" validate:"required"`
	College     string   `json:"college" validate:"required"`
	Event       string   `json:"event"`
	EventID     int64    `json:"event_id"`
	TeamMembers []string `json:"team_members"`
	PassType    string   `json:"pass_type" validate:"required"`
	Amount      int      `json:"amount" validate:"required,gt=0"`
}

type RegistrationCreatedResponse struct {
	Message        string `json:"message"`
	RegistrationID int64  `json:"registration_id"`
	Amount         int    `json:"amount"`
}

type CreateOrderRequest struct {
	Amount         int    `json:"amount" validate:"required,gt=0"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	RegistrationID int64  `json:"registration_id"`
}

type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type VerifyPaymentRequest struct {
	OrderID        string `json:"razorpay_order_id" validate:"required"`
	PaymentID      string `json:"razorpay_payment_id" validate:"required"`
	Signature      string `json:"razorpay_signature" validate:"required"`
	RegistrationID int64  `json:"registration_id" validate:"required"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type ConfigResponse struct {
	RazorpayKey string `json:"razorpay_key"`
}

type EventUpsertRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Day          string   `json:"day"`
	Category     string   `json:"category" validate:"required,category"`
	Type         string   `json:"type" validate:"required,participation"`
	Fee          int      `json:"fee"`
	ImageColor   string   `json:"image_color"`
	Icon         string   `json:"icon"`
	RuleBook     []string `json:"rule_book"`
	Coordinators []struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Image string `json:"image"`
	} `json:"coordinators"`
}

// TicketEmailMessage is the payload queued after a registration turns PAID.
type TicketEmailMessage struct {
	RegistrationID int64  `json:"registration_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Event          string `json:"event"`
	Amount         int    `json:"amount"`
	PassType       string `json:"pass_type"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func GatewayError(c *ginext.Context, desc string) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: GatewayFailure,
			Desc: desc,
		},
	})
}

func UnauthorizedError(c *ginext.Context, desc string) {
	c.JSON(401, Response{
		Status: "error",
		Error: &Error{
			Code: Unauthorized,
			Desc: desc,
		},
	})
}

func ForbiddenError(c *ginext.Context, desc string) {
	c.JSON(403, Response{
		Status: "error",
		Error: &Error{
			Code: Unauthorized,
			Desc: desc,
		},
	})
}

func FieldBadFormatError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldBadFormat, "Field '"+fieldName+"' has bad format")
}

func FieldIncorrectError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldIncorrect, "Field '"+fieldName+"' is incorrect")
}

func EventNotFoundError(c *ginext.Context) {
	BadResponseError(c, EventNotFound, "Event not found")
}

func RegistrationNotFoundError(c *ginext.Context) {
	BadResponseError(c, RegistrationNotFound, "Registration not found")
}

func RegistrationAlreadyPaidError(c *ginext.Context) {
	BadResponseError(c, RegistrationAlreadyPaid, "Registration is already paid")
}

func InvalidSignatureError(c *ginext.Context) {
	BadResponseError(c, InvalidSignature, "Invalid signature")
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}

// RegistrationResponse mirrors a stored registration for the admin panel.
type RegistrationResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Year        string    `json:"year"`
	Department  string    `json:"department"`
	RollNo      string    `json:"roll_no"`
	College     string    `json:"college"`
	Event       string    `json:"event"`
	TeamMembers []string  `json:"team_members,omitempty"`
	Status      string    `json:"status"`
	PaymentID   string    `json:"payment_id,omitempty"`
	Amount      int       `json:"amount"`
	PassType    string    `json:"pass_type"`
	Timestamp   time.Time `json:"timestamp"`
}
