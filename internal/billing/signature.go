package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSignature is returned for any signature header that does not
// verify against the shared secret. Callers must take no model action on it.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// VerifySignature checks the provider's signature header against the shared
// secret. The header carries a unix timestamp and one or more HMAC-SHA256
// signatures over "<timestamp>.<payload>":
//
//	Webhook-Signature: t=1700000000,v1=5257a869e7...
//
// The timestamp must fall within tolerance of now to bound replay.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration, now time.Time) error {
	if header == "" || secret == "" {
		return ErrInvalidSignature
	}

	var ts int64
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			parsed, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return ErrInvalidSignature
			}
			ts = parsed
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}

	if ts == 0 || len(sigs) == 0 {
		return ErrInvalidSignature
	}

	sent := time.Unix(ts, 0)
	if sent.Before(now.Add(-tolerance)) || sent.After(now.Add(tolerance)) {
		return ErrInvalidSignature
	}

	expected := ComputeSignature(payload, secret, ts)
	for _, sig := range sigs {
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return nil
		}
	}
	return ErrInvalidSignature
}

// ComputeSignature produces the hex HMAC-SHA256 signature the provider
// sends. Exported for tests and local webhook replay tooling.
func ComputeSignature(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
