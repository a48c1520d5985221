package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_1"
		paymentID = "pay_1"
		secret    = "s3cr3t"
	)
	good := signFor(orderID, paymentID, secret)

	if !VerifySignature(orderID, paymentID, good, secret) {
		t.Fatal("correct signature rejected")
	}

	// Deterministic: repeated calls agree.
	for i := 0; i < 3; i++ {
		if !VerifySignature(orderID, paymentID, good, secret) {
			t.Fatal("verification is not deterministic")
		}
	}
}

func TestVerifySignatureRejectsMutations(t *testing.T) {
	const (
		orderID   = "order_1"
		paymentID = "pay_1"
		secret    = "s3cr3t"
	)
	good := signFor(orderID, paymentID, secret)

	// Flip one hex character of the signature.
	flipped := []byte(good)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	if VerifySignature(orderID, paymentID, string(flipped), secret) {
		t.Error("mutated signature accepted")
	}

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		secret    string
	}{
		{"mutated order id", "order_2", paymentID, secret},
		{"mutated payment id", orderID, "pay_2", secret},
		{"mutated secret", orderID, paymentID, "s3cr3u"},
		{"empty order id", "", paymentID, secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifySignature(tt.orderID, tt.paymentID, good, tt.secret) {
				t.Errorf("signature accepted for %s", tt.name)
			}
		})
	}
}

func TestVerifySignatureEmptyClaim(t *testing.T) {
	if VerifySignature("order_1", "pay_1", "", "s3cr3t") {
		t.Error("empty signature accepted")
	}
}
