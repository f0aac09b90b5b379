// Package crypto provides the symmetric cipher used to protect vault fields.
//
// This package implements AES-256-GCM authenticated encryption. The session
// key string is expanded to a 256-bit AES key with HKDF-SHA256; this is key
// expansion only, not a slow KDF, so guessing resistance is exactly that of
// the key string itself.
//
// # Known security gap
//
// When no key is supplied the cipher falls back to DefaultKey, a fixed
// string. Snapshots written under the default key are protected against
// casual inspection only. The fallback is kept for compatibility with
// existing vault exports; callers that can obtain real key material should
// always call Rekey or construct the cipher with New.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// DefaultKey is the fallback session key used when none is supplied.
	DefaultKey = "password-guardian-vault-default-key"

	// KeyLength is the length of the expanded AES key in bytes (256 bits).
	KeyLength = 32

	// NonceLength is the length of GCM nonces in bytes (96 bits).
	NonceLength = 12
)

// hkdfInfo binds derived keys to this application.
var hkdfInfo = []byte("password-guardian-vault/cipher/v1")

// Sentinel errors returned by cipher operations.
var (
	// ErrDecryptionFailed indicates authentication tag verification failed,
	// typically a wrong key or tampered ciphertext.
	ErrDecryptionFailed = errors.New("crypto: decryption failed")

	// ErrCiphertextTooShort indicates the decoded ciphertext is shorter than
	// a nonce plus the GCM tag.
	ErrCiphertextTooShort = errors.New("crypto: ciphertext too short")

	// ErrMalformedCiphertext indicates the ciphertext is not valid base64.
	ErrMalformedCiphertext = errors.New("crypto: malformed ciphertext")
)

// Cipher encrypts and decrypts vault field values with a session key.
// The key is held explicitly rather than as module-level state; rekeying
// replaces it for all subsequent operations on this cipher.
type Cipher struct {
	aead cipher.AEAD
}

// New creates a Cipher keyed from the given key string. An empty key falls
// back to DefaultKey for compatibility with legacy exports.
func New(key string) *Cipher {
	c := &Cipher{}
	c.Rekey(key)
	return c
}

// Default returns a Cipher keyed with DefaultKey.
func Default() *Cipher {
	return New("")
}

// Rekey replaces the session key. An empty key falls back to DefaultKey.
func (c *Cipher) Rekey(key string) {
	if key == "" {
		key = DefaultKey
	}
	c.aead = buildAEAD(expandKey(key))
}

// expandKey expands a key string to a 32-byte AES key with HKDF-SHA256.
func expandKey(key string) []byte {
	out := make([]byte, KeyLength)
	r := hkdf.New(sha256.New, []byte(key), nil, hkdfInfo)
	if _, err := io.ReadFull(r, out); err != nil {
		// hkdf only fails when asked for more output than SHA-256 allows;
		// 32 bytes is far below that limit.
		panic(fmt.Sprintf("crypto: hkdf expansion failed: %v", err))
	}
	return out
}

func buildAEAD(key []byte) cipher.AEAD {
	block, err := aes.NewCipher(key)
	if err != nil {
		panic(fmt.Sprintf("crypto: failed to create cipher: %v", err))
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		panic(fmt.Sprintf("crypto: failed to create GCM: %v", err))
	}
	return gcm
}

// Encrypt encrypts plaintext with the session key. The random nonce is
// prepended to the ciphertext and the whole blob is base64-encoded.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, NonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto: failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt decrypts a ciphertext produced by Encrypt. It verifies the
// authentication tag and returns a typed error on any failure; it never
// panics on arbitrary input. Callers that need the soft-fail boundary
// contract (empty string on failure) wrap this themselves.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	if len(blob) < NonceLength+c.aead.Overhead() {
		return "", ErrCiphertextTooShort
	}

	nonce := blob[:NonceLength]
	plaintext, err := c.aead.Open(nil, nonce, blob[NonceLength:], nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plaintext), nil
}
