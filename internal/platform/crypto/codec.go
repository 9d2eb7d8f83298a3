// Package crypto provides the field codec applied to consumer personal data
// at the persistence boundary. Callers only see Encode/Decode; key material
// never leaves this package.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

// nonceDomain separates the nonce-derivation HMAC from other uses of the key.
const nonceDomain = "assent/field-codec/nonce"

var errKeySize = fmt.Errorf("crypto: key must be %d bytes", KeySize)

// Codec is a deterministic symmetric field codec: the same plaintext always
// encodes to the same ciphertext, so encrypted columns stay usable as lookup
// keys. Determinism comes from a synthetic nonce derived via HMAC over the
// plaintext (SIV-style) instead of a random one.
type Codec struct {
	aead     cipher.AEAD
	nonceKey []byte
}

// NewCodec constructs a Codec from a 32-byte key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, errKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: init gcm: %w", err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(nonceDomain))
	return &Codec{aead: aead, nonceKey: mac.Sum(nil)}, nil
}

// Encode encrypts plaintext and returns a base64 ciphertext with the nonce
// prepended. Empty input encodes to the empty string.
func (c *Codec) Encode(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	nonce := c.deriveNonce([]byte(plaintext))
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed)
}

// Decode reverses Encode. It fails if the ciphertext was produced with a
// different key or has been tampered with.
func (c *Codec) Decode(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("crypto: decode ciphertext: %w", err)
	}
	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", errors.New("crypto: ciphertext too short")
	}
	nonce, sealed := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", errors.New("crypto: decryption failed (wrong key or tampered data)")
	}
	return string(plaintext), nil
}

func (c *Codec) deriveNonce(plaintext []byte) []byte {
	mac := hmac.New(sha256.New, c.nonceKey)
	mac.Write(plaintext)
	return mac.Sum(nil)[:c.aead.NonceSize()]
}
