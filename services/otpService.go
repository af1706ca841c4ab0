package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log"
	"time"

	"github.com/uncountedbug0615/delivery-app-otp-verifier/models"
)

const otpValidity = 10 * time.Minute

const (
	otpEmailSubject      = "🧾 Your OTP for Toshan Bakery Order"
	deliveryEmailSubject = "✅ Your Toshan Bakery Order has been Delivered!"
)

// OTPService drives the delivery-confirmation workflow: issue a code to the
// customer, verify it at the door, flip the order to delivered.
type OTPService struct {
	Store  OTPStore
	Orders OrderStore
	Mailer Mailer

	now func() time.Time
}

func NewOTPService(store OTPStore, orders OrderStore, mailer Mailer) *OTPService {
	return &OTPService{
		Store:  store,
		Orders: orders,
		Mailer: mailer,
		now:    time.Now,
	}
}

// generateOTP draws a uniformly random code in [100000, 999999]. The range
// intentionally excludes leading zeros, matching the codes customers have
// always received; widening it would change the search space.
func generateOTP() (string, error) {
	var b [4]byte
	_, err := rand.Read(b[:])
	if err != nil {
		return "", err
	}
	n := binary.LittleEndian.Uint32(b[:])
	return fmt.Sprintf("%d", 100000+n%900000), nil
}

// IssueOTP creates a fresh code for the order and emails it to the customer.
// Any previous code for the same order is overwritten, so a reissue always
// invalidates what came before. The record is persisted before the email
// goes out: if the send fails the caller gets an error, but a valid unused
// OTP remains in the store and a reissue is the recovery path.
func (osv *OTPService) IssueOTP(ctx context.Context, orderID, email string) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	now := osv.now()
	otp := models.DeliveryOTP{
		OrderID:   orderID,
		Code:      code,
		Email:     email,
		ExpiresAt: now.Add(otpValidity),
		CreatedAt: now,
	}

	if err := osv.Store.Put(ctx, otp); err != nil {
		return err
	}
	log.Printf("Saved OTP for order %s", orderID)

	if err := osv.Mailer.Send(email, otpEmailSubject, OTPEmailBody(orderID, code)); err != nil {
		return err
	}
	log.Printf("OTP sent to %s", email)
	return nil
}

// VerifyOTP checks the submitted code for the order. It returns (false, nil)
// when there is no record, the code does not match, or the code has expired;
// a mismatched or expired record is left in place until its TTL or the next
// reissue. A non-nil error means a storage or email failure, which callers
// must not report as an invalid code.
//
// On a match the record is deleted first (single use), then the order is
// flipped to delivered and the confirmation mail is sent. The delete and the
// order update are not atomic: a crash in between consumes the OTP without
// marking the order, and only a reissue recovers.
func (osv *OTPService) VerifyOTP(ctx context.Context, orderID, code string) (bool, error) {
	record, err := osv.Store.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if record == nil {
		log.Printf("No OTP record for %s", orderID)
		return false, nil
	}

	if record.Code != code || record.Expired(osv.now()) {
		log.Printf("OTP invalid or expired for order %s", orderID)
		return false, nil
	}

	if err := osv.Store.Delete(ctx, orderID); err != nil {
		return false, err
	}

	if err := osv.Orders.MarkDelivered(ctx, orderID); err != nil {
		return false, err
	}

	order, err := osv.Orders.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	if err := osv.Mailer.Send(record.Email, deliveryEmailSubject, DeliveryEmailBody(*order)); err != nil {
		return false, err
	}

	log.Printf("OTP verified and delivery email sent for order %s", orderID)
	return true, nil
}
