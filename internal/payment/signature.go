package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks that a payment completion notice originated from
// the gateway holding secret. The expected signature is the hex digest of
// HMAC-SHA256 over "orderID|paymentID"; the claimed signature must match
// it exactly. This is the only authenticity check on the payment path.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return expected == signature
}
