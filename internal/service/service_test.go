package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rajesh001100/cultural/internal/dto"
	"github.com/Rajesh001100/cultural/internal/model"
	"github.com/Rajesh001100/cultural/internal/payment"
	"github.com/Rajesh001100/cultural/internal/repo"
)

type fakeRepo struct {
	events map[int64]*model.Event
	regs   map[int64]*model.Registration
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events: make(map[int64]*model.Event),
		regs:   make(map[int64]*model.Registration),
	}
}

func (f *fakeRepo) CreateEvent(ctx context.Context, e *model.Event) (int64, error) {
	f.nextID++
	e.ID = f.nextID
	f.events[e.ID] = e
	return e.ID, nil
}

func (f *fakeRepo) UpdateEvent(ctx context.Context, e *model.Event) error {
	if _, ok := f.events[e.ID]; !ok {
		return repo.ErrEventNotFound
	}
	f.events[e.ID] = e
	return nil
}

func (f *fakeRepo) DeleteEvent(ctx context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return repo.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) GetEventByID(ctx context.Context, id int64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repo.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeRepo) GetAllEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepo) CreateRegistration(ctx context.Context, reg *model.Registration) (int64, error) {
	f.nextID++
	reg.ID = f.nextID
	reg.Status = model.StatusPending
	reg.Timestamp = time.Now()
	f.regs[reg.ID] = reg
	return reg.ID, nil
}

func (f *fakeRepo) GetRegistrationByID(ctx context.Context, id int64) (*model.Registration, error) {
	reg, ok := f.regs[id]
	if !ok {
		return nil, repo.ErrRegistrationNotFound
	}
	return reg, nil
}

func (f *fakeRepo) GetAllRegistrations(ctx context.Context) ([]model.Registration, error) {
	var out []model.Registration
	for _, r := range f.regs {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) MarkPaidTx(ctx context.Context, registrationID int64, paymentID string) (*model.Registration, error) {
	reg, ok := f.regs[registrationID]
	if !ok {
		return nil, repo.ErrRegistrationNotFound
	}
	if reg.Status == model.StatusPaid {
		return reg, repo.ErrAlreadyPaid
	}
	reg.Status = model.StatusPaid
	reg.PaymentID = paymentID
	return reg, nil
}

func (f *fakeRepo) MigrateUp(migrationsDir string) error   { return nil }
func (f *fakeRepo) MigrateDown(migrationsDir string) error { return nil }

type fakePublisher struct {
	published [][]byte
	err       error
}

func (f *fakePublisher) Publish(message []byte) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, message)
	return nil
}

type fakeGateway struct {
	lastAmount   int
	lastCurrency string
	err          error
}

func (f *fakeGateway) CreateOrder(amountMajorUnits int, currency, receipt string) (*payment.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastAmount = amountMajorUnits
	f.lastCurrency = currency
	return &payment.Order{ID: "order_1", Amount: int64(amountMajorUnits) * 100, Currency: currency}, nil
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func newTestService(fr *fakeRepo, pub *fakePublisher, gw *fakeGateway) *service {
	log := zerolog.Nop()
	return NewService(fr, &log, pub, gw, nil, Config{
		JWTSecret:     "secret",
		AdminUsername: "admin",
		AdminPassword: "password",
		GatewaySecret: "s3cr3t",
	}).(*service)
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:       "Asha",
		Email:      "a@x.com",
		Phone:      "9000000000",
		Year:       "2",
		Department: "CSE",
		RollNo:     "21CS01",
		College:    "X",
		Event:      "Codeathon",
		PassType:   "Day 1 Pass (₹250)",
		Amount:     250,
	}
}

func TestCreateRegistrationStartsPending(t *testing.T) {
	fr := newFakeRepo()
	s := newTestService(fr, &fakePublisher{}, &fakeGateway{})

	id, err := s.createRegistration(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("createRegistration: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated id")
	}

	reg := fr.regs[id]
	if reg.Status != model.StatusPending {
		t.Errorf("status = %q, want %q", reg.Status, model.StatusPending)
	}
	if reg.PaymentID != "" {
		t.Errorf("payment reference = %q, want empty", reg.PaymentID)
	}
	if reg.Event != "Codeathon" {
		t.Errorf("event = %q, want Codeathon", reg.Event)
	}
}

func TestCreateRegistrationResolvesEventID(t *testing.T) {
	fr := newFakeRepo()
	eventID, _ := fr.CreateEvent(context.Background(), &model.Event{
		Title: "Cyber Hunt", Category: "technical", Type: model.TypeSolo,
	})
	s := newTestService(fr, &fakePublisher{}, &fakeGateway{})

	req := validRegisterRequest()
	req.Event = ""
	req.EventID = eventID

	id, err := s.createRegistration(context.Background(), req)
	if err != nil {
		t.Fatalf("createRegistration: %v", err)
	}
	if fr.regs[id].Event != "Cyber Hunt" {
		t.Errorf("event = %q, want resolved title", fr.regs[id].Event)
	}
}

func TestCreateRegistrationUnknownEventID(t *testing.T) {
	s := newTestService(newFakeRepo(), &fakePublisher{}, &fakeGateway{})

	req := validRegisterRequest()
	req.Event = ""
	req.EventID = 42

	if _, err := s.createRegistration(context.Background(), req); !errors.Is(err, repo.ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}

func TestCreateRegistrationMissingEventRef(t *testing.T) {
	s := newTestService(newFakeRepo(), &fakePublisher{}, &fakeGateway{})

	req := validRegisterRequest()
	req.Event = ""
	req.EventID = 0

	if _, err := s.createRegistration(context.Background(), req); !errors.Is(err, ErrMissingEventRef) {
		t.Errorf("err = %v, want ErrMissingEventRef", err)
	}
}

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyRequestFor(regID int64) dto.VerifyPaymentRequest {
	return dto.VerifyPaymentRequest{
		OrderID:        "order_1",
		PaymentID:      "pay_1",
		Signature:      signFor("order_1", "pay_1", "s3cr3t"),
		RegistrationID: regID,
	}
}

func TestConfirmPaymentMarksPaid(t *testing.T) {
	fr := newFakeRepo()
	pub := &fakePublisher{}
	s := newTestService(fr, pub, &fakeGateway{})

	id, _ := s.createRegistration(context.Background(), validRegisterRequest())

	reg, err := s.confirmPayment(context.Background(), verifyRequestFor(id))
	if err != nil {
		t.Fatalf("confirmPayment: %v", err)
	}
	if reg.Status != model.StatusPaid {
		t.Errorf("status = %q, want %q", reg.Status, model.StatusPaid)
	}
	if reg.PaymentID != "pay_1" {
		t.Errorf("payment id = %q, want pay_1", reg.PaymentID)
	}
	if len(pub.published) != 1 {
		t.Errorf("published %d messages, want 1", len(pub.published))
	}
}

func TestConfirmPaymentBadSignature(t *testing.T) {
	fr := newFakeRepo()
	pub := &fakePublisher{}
	s := newTestService(fr, pub, &fakeGateway{})

	id, _ := s.createRegistration(context.Background(), validRegisterRequest())

	req := verifyRequestFor(id)
	req.Signature = "deadbeef"

	if _, err := s.confirmPayment(context.Background(), req); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("err = %v, want ErrSignatureMismatch", err)
	}
	if fr.regs[id].Status != model.StatusPending {
		t.Errorf("status = %q, want registration left PENDING", fr.regs[id].Status)
	}
	if len(pub.published) != 0 {
		t.Errorf("published %d messages, want 0", len(pub.published))
	}
}

func TestConfirmPaymentUnknownRegistration(t *testing.T) {
	fr := newFakeRepo()
	s := newTestService(fr, &fakePublisher{}, &fakeGateway{})

	if _, err := s.confirmPayment(context.Background(), verifyRequestFor(999)); !errors.Is(err, repo.ErrRegistrationNotFound) {
		t.Fatalf("err = %v, want ErrRegistrationNotFound", err)
	}
	if len(fr.regs) != 0 {
		t.Error("row mutated for unknown registration")
	}
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	fr := newFakeRepo()
	pub := &fakePublisher{}
	s := newTestService(fr, pub, &fakeGateway{})

	id, _ := s.createRegistration(context.Background(), validRegisterRequest())

	if _, err := s.confirmPayment(context.Background(), verifyRequestFor(id)); err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	_, err := s.confirmPayment(context.Background(), verifyRequestFor(id))
	if !errors.Is(err, repo.ErrAlreadyPaid) {
		t.Fatalf("second confirm err = %v, want ErrAlreadyPaid", err)
	}
	if fr.regs[id].Status != model.StatusPaid {
		t.Errorf("status = %q, want PAID", fr.regs[id].Status)
	}
	if len(pub.published) != 1 {
		t.Errorf("published %d messages, want exactly 1", len(pub.published))
	}
}

func TestCreateOrderDefaultsCurrency(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestService(newFakeRepo(), &fakePublisher{}, gw)

	order, err := s.createOrder(context.Background(), dto.CreateOrderRequest{Amount: 250, Receipt: "reg_1"})
	if err != nil {
		t.Fatalf("createOrder: %v", err)
	}
	if gw.lastCurrency != "INR" {
		t.Errorf("currency = %q, want INR", gw.lastCurrency)
	}
	if gw.lastAmount != 250 {
		t.Errorf("amount = %d major units, want 250", gw.lastAmount)
	}
	if order.ID == "" {
		t.Error("expected an order id")
	}
}

func TestCreateOrderRefusesPaidRegistration(t *testing.T) {
	fr := newFakeRepo()
	s := newTestService(fr, &fakePublisher{}, &fakeGateway{})

	id, _ := s.createRegistration(context.Background(), validRegisterRequest())
	if _, err := s.confirmPayment(context.Background(), verifyRequestFor(id)); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, err := s.createOrder(context.Background(), dto.CreateOrderRequest{Amount: 250, RegistrationID: id})
	if !errors.Is(err, repo.ErrAlreadyPaid) {
		t.Errorf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestCreateOrderGatewayErrorSurfaced(t *testing.T) {
	gw := &fakeGateway{err: payment.ErrGateway}
	s := newTestService(newFakeRepo(), &fakePublisher{}, gw)

	if _, err := s.createOrder(context.Background(), dto.CreateOrderRequest{Amount: 250}); !errors.Is(err, payment.ErrGateway) {
		t.Errorf("err = %v, want ErrGateway", err)
	}
}

func TestConfirmPaymentSurvivesPublishFailure(t *testing.T) {
	fr := newFakeRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	s := newTestService(fr, pub, &fakeGateway{})

	id, _ := s.createRegistration(context.Background(), validRegisterRequest())

	reg, err := s.confirmPayment(context.Background(), verifyRequestFor(id))
	if err != nil {
		t.Fatalf("confirmPayment: %v", err)
	}
	if reg.Status != model.StatusPaid {
		t.Errorf("status = %q, want PAID despite publish failure", reg.Status)
	}
}
