package crypto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := New("test-session-key")

	cases := []string{
		"",
		"hunter2",
		"correct horse battery staple",
		"pässword-ünïcode-日本語",
		strings.Repeat("x", 4096),
	}

	for _, plaintext := range cases {
		ciphertext, err := c.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("Encrypt(%q) failed: %v", plaintext, err)
		}
		if ciphertext == plaintext && plaintext != "" {
			t.Errorf("ciphertext equals plaintext for %q", plaintext)
		}

		got, err := c.Decrypt(ciphertext)
		if err != nil {
			t.Fatalf("Decrypt failed: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestEncryptNonDeterministic(t *testing.T) {
	c := Default()

	a, err := c.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := c.Encrypt("same input")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if a == b {
		t.Error("expected distinct ciphertexts for repeated encryption")
	}
}

func TestDecryptGarbage(t *testing.T) {
	c := Default()

	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"not base64", "%%%not-base64%%%", ErrMalformedCiphertext},
		{"empty", "", ErrCiphertextTooShort},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short")), ErrCiphertextTooShort},
		{"random bytes", base64.StdEncoding.EncodeToString(make([]byte, 64)), ErrDecryptionFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Decrypt(tc.input)
			if !errors.Is(err, tc.want) {
				t.Errorf("Decrypt(%q) error = %v, want %v", tc.input, err, tc.want)
			}
		})
	}
}

func TestDecryptWrongKey(t *testing.T) {
	a := New("key-one")
	b := New("key-two")

	ciphertext, err := a.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := b.Decrypt(ciphertext); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestRekey(t *testing.T) {
	c := New("original")
	ciphertext, err := c.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	c.Rekey("replacement")
	if _, err := c.Decrypt(ciphertext); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed after rekey, got %v", err)
	}

	// Empty key falls back to the default.
	c.Rekey("")
	def := Default()
	ciphertext, err = def.Encrypt("shared")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	got, err := c.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if got != "shared" {
		t.Errorf("expected %q, got %q", "shared", got)
	}
}
