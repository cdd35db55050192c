// Package auth verifies the authenticity of inbound Discord interactions.
package auth

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Verifier checks Ed25519 interaction signatures against a configured
// application public key. The signed payload is the concatenation of the
// X-Signature-Timestamp header and the raw request body.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier decodes a hex-encoded Ed25519 public key into a Verifier
func NewVerifier(publicKeyHex string) (*Verifier, error) {
	key, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid public key length: expected %d, got %d", ed25519.PublicKeySize, len(key))
	}
	return &Verifier{publicKey: ed25519.PublicKey(key)}, nil
}

// Verify reports whether signatureHex is a valid Ed25519 signature over
// timestamp||body. A malformed signature is simply not valid; no error is
// surfaced because the caller treats any failure as an unauthorized request.
func (v *Verifier) Verify(timestamp string, body []byte, signatureHex string) bool {
	sig, err := hex.DecodeString(signatureHex)
	if err != nil {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	return ed25519.Verify(v.publicKey, msg, sig)
}
