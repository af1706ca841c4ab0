package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

type fakeOTPStore struct {
	records    map[string]models.DeliveryOTP
	failPut    bool
	failGet    bool
	failDelete bool
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{records: map[string]models.DeliveryOTP{}}
}

func (s *fakeOTPStore) Put(ctx context.Context, otp models.DeliveryOTP) error {
	if s.failPut {
		return errors.New("put failed")
	}
	s.records[otp.OrderID] = otp
	return nil
}

func (s *fakeOTPStore) Get(ctx context.Context, orderID string) (*models.DeliveryOTP, error) {
	if s.failGet {
		return nil, errors.New("get failed")
	}
	record, ok := s.records[orderID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *fakeOTPStore) Delete(ctx context.Context, orderID string) error {
	if s.failDelete {
		return errors.New("delete failed")
	}
	delete(s.records, orderID)
	return nil
}

type fakeOrderStore struct {
	orders   map[string]models.Order
	failMark bool
}

func newFakeOrderStore(orders ...models.Order) *fakeOrderStore {
	s := &fakeOrderStore{orders: map[string]models.Order{}}
	for _, order := range orders {
		s.orders[order.ID] = order
	}
	return s
}

func (s *fakeOrderStore) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s not found", orderID)
	}
	return &order, nil
}

func (s *fakeOrderStore) MarkDelivered(ctx context.Context, orderID string) error {
	if s.failMark {
		return errors.New("update failed")
	}
	order, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %s not found", orderID)
	}
	order.Delivered = true
	order.OrderStatus = models.OrderStatusDelivered
	order.PaymentStatus = models.PaymentStatusConfirmed
	s.orders[orderID] = order
	return nil
}

func (s *fakeOrderStore) FindConfirmedSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var confirmed []models.Order
	for _, order := range s.orders {
		if !order.Timestamp.Before(since) && strings.EqualFold(order.OrderStatus, models.OrderStatusConfirmed) {
			confirmed = append(confirmed, order)
		}
	}
	return confirmed, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent     []sentMail
	failNext bool
}

func (m *fakeMailer) Send(to, subject, htmlBody string) error {
	if m.failNext {
		m.failNext = false
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func newTestService() (*OTPService, *fakeOTPStore, *fakeOrderStore, *fakeMailer) {
	store := newFakeOTPStore()
	orders := newFakeOrderStore(models.Order{
		ID:          "ORD1234567890",
		OrderStatus: models.OrderStatusConfirmed,
		Timestamp:   time.Now(),
		Items:       []models.OrderItem{{Name: "Croissant", Quantity: 2, Price: 40}},
		Total:       80,
		Address:     models.Address{Name: "Asha"},
	})
	mailer := &fakeMailer{}
	return NewOTPService(store, orders, mailer), store, orders, mailer
}

func TestIssueOTP_StoresCodeAndSendsEmail(t *testing.T) {
	svc, store, _, mailer := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	record, ok := store.records["ORD1234567890"]
	if !ok {
		t.Fatal("Expected an OTP record to be stored")
	}
	if len(record.Code) != 6 {
		t.Errorf("Expected a 6-digit code, got %q", record.Code)
	}
	for _, c := range record.Code {
		if c < '0' || c > '9' {
			t.Errorf("Expected digits only, got %q", record.Code)
		}
	}
	if record.Code[0] == '0' {
		t.Errorf("Code range starts at 100000, got leading zero: %q", record.Code)
	}

	ttl := time.Until(record.ExpiresAt)
	if ttl < 9*time.Minute || ttl > 11*time.Minute {
		t.Errorf("Expected expiry about 10 minutes out, got %s", ttl)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("Expected 1 email, got %d", len(mailer.sent))
	}
	if mailer.sent[0].To != "a@b.com" {
		t.Errorf("Expected email to a@b.com, got %s", mailer.sent[0].To)
	}
	if !strings.Contains(mailer.sent[0].Body, record.Code) {
		t.Error("Expected email body to contain the code")
	}
	if !strings.Contains(mailer.sent[0].Body, "34567890") {
		t.Error("Expected email body to reference the last 8 chars of the order id")
	}
}

func TestIssueOTP_EmailFailureKeepsRecord(t *testing.T) {
	svc, store, _, mailer := newTestService()
	mailer.failNext = true

	err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com")
	if err == nil {
		t.Fatal("Expected an error when the email send fails")
	}

	// The OTP was persisted before the send, so it stays valid; the only
	// recovery is a reissue.
	if _, ok := store.records["ORD1234567890"]; !ok {
		t.Error("Expected the OTP record to remain after email failure")
	}
}

func TestVerifyOTP_HappyPathConsumesCode(t *testing.T) {
	svc, store, orders, mailer := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	code := store.records["ORD1234567890"].Code

	valid, err := svc.VerifyOTP(context.Background(), "ORD1234567890", code)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !valid {
		t.Fatal("Expected valid=true for the issued code")
	}

	order := orders.orders["ORD1234567890"]
	if !order.Delivered || order.OrderStatus != models.OrderStatusDelivered {
		t.Errorf("Expected the order to be marked delivered, got %+v", order)
	}
	if order.PaymentStatus != models.PaymentStatusConfirmed {
		t.Errorf("Expected payment confirmed, got %s", order.PaymentStatus)
	}

	// OTP mail + delivery confirmation mail
	if len(mailer.sent) != 2 {
		t.Fatalf("Expected 2 emails, got %d", len(mailer.sent))
	}
	confirmation := mailer.sent[1]
	if confirmation.To != "a@b.com" {
		t.Errorf("Expected confirmation to the OTP recipient, got %s", confirmation.To)
	}
	if !strings.Contains(confirmation.Body, "Croissant ×2") {
		t.Error("Expected itemized contents in the confirmation body")
	}
	if !strings.Contains(confirmation.Body, "80.00") {
		t.Error("Expected the total in the confirmation body")
	}

	// Single use: the same code must not verify twice.
	valid, err = svc.VerifyOTP(context.Background(), "ORD1234567890", code)
	if err != nil {
		t.Fatalf("Expected no error on reuse, got: %v", err)
	}
	if valid {
		t.Error("Expected valid=false for an already-consumed code")
	}
}

func TestVerifyOTP_UnknownOrder(t *testing.T) {
	svc, _, _, _ := newTestService()

	valid, err := svc.VerifyOTP(context.Background(), "NOPE", "123456")
	if err != nil {
		t.Fatalf("Expected no error for an unknown order, got: %v", err)
	}
	if valid {
		t.Error("Expected valid=false for an unknown order")
	}
}

func TestVerifyOTP_WrongCodeLeavesRecord(t *testing.T) {
	svc, store, orders, _ := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	valid, err := svc.VerifyOTP(context.Background(), "ORD1234567890", "000000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if valid {
		t.Error("Expected valid=false for a wrong code")
	}

	if _, ok := store.records["ORD1234567890"]; !ok {
		t.Error("Expected the record to survive a wrong attempt")
	}
	if orders.orders["ORD1234567890"].Delivered {
		t.Error("Expected the order untouched after a wrong attempt")
	}

	// The real code still works afterwards.
	code := store.records["ORD1234567890"].Code
	valid, err = svc.VerifyOTP(context.Background(), "ORD1234567890", code)
	if err != nil || !valid {
		t.Errorf("Expected the real code to still verify, got valid=%v err=%v", valid, err)
	}
}

func TestVerifyOTP_ExpiredCode(t *testing.T) {
	svc, store, orders, _ := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	code := store.records["ORD1234567890"].Code

	svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	valid, err := svc.VerifyOTP(context.Background(), "ORD1234567890", code)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if valid {
		t.Error("Expected valid=false after expiry")
	}
	if orders.orders["ORD1234567890"].Delivered {
		t.Error("Expected the order untouched after an expired attempt")
	}
	if _, ok := store.records["ORD1234567890"]; !ok {
		t.Error("Expected the expired record left for TTL cleanup")
	}
}

func TestIssueOTP_ReissueInvalidatesPreviousCode(t *testing.T) {
	svc, store, _, _ := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("First issue failed: %v", err)
	}
	firstCode := store.records["ORD1234567890"].Code

	// Reissue until the code actually differs; two random draws can collide.
	secondCode := firstCode
	for i := 0; i < 50 && secondCode == firstCode; i++ {
		if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
			t.Fatalf("Reissue failed: %v", err)
		}
		secondCode = store.records["ORD1234567890"].Code
	}
	if secondCode == firstCode {
		t.Fatal("Could not obtain a distinct code after 50 reissues")
	}

	valid, err := svc.VerifyOTP(context.Background(), "ORD1234567890", firstCode)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if valid {
		t.Error("Expected the overwritten code to fail verification")
	}

	valid, err = svc.VerifyOTP(context.Background(), "ORD1234567890", secondCode)
	if err != nil || !valid {
		t.Errorf("Expected the fresh code to verify, got valid=%v err=%v", valid, err)
	}
}

func TestVerifyOTP_StorageErrorIsNotInvalidCode(t *testing.T) {
	svc, store, _, _ := newTestService()
	store.failGet = true

	_, err := svc.VerifyOTP(context.Background(), "ORD1234567890", "123456")
	if err == nil {
		t.Fatal("Expected a storage failure to surface as an error, not valid=false")
	}
}

func TestVerifyOTP_OrderUpdateFailureSkipsEmail(t *testing.T) {
	svc, store, orders, mailer := newTestService()

	if err := svc.IssueOTP(context.Background(), "ORD1234567890", "a@b.com"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	code := store.records["ORD1234567890"].Code
	orders.failMark = true

	_, err := svc.VerifyOTP(context.Background(), "ORD1234567890", code)
	if err == nil {
		t.Fatal("Expected an error when the order update fails")
	}
	if len(mailer.sent) != 1 {
		t.Errorf("Expected no delivery email after a failed update, got %d mails", len(mailer.sent))
	}
}

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("Expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("Expected no leading zero, got %q", code)
		}
	}
}
