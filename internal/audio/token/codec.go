// Package token seals and validates the scoped access grants that gate
// every audio operation. A grant is serialized to compact JSON, encrypted
// with AES-256-GCM and handed to the client as an opaque base64url string.
// GCM gives tamper evidence for free: a flipped byte anywhere in the token
// fails the auth tag check and the grant is rejected outright.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/linguastream/linguastream/internal/audio/domain"
	"github.com/linguastream/linguastream/pkg/idx"
)

const (
	// TTL is the fixed grant lifetime. ExpiresAt is always IssuedAt + TTL.
	TTL = 5 * time.Minute

	// skewTolerance bounds |now - issuedAt|. A valid ciphertext with an
	// implausible issue time is still rejected, which blunts replay of
	// tokens minted by a skewed or lying clock.
	skewTolerance = 5 * time.Minute
)

var (
	ErrInvalidToken = errors.New("token: invalid access token")
	ErrWrongAction  = errors.New("token: action not authorized by grant")
	ErrExpired      = errors.New("token: grant expired")
	ErrClockSkew    = errors.New("token: grant timestamp outside tolerance")
)

// Codec issues and parses sealed access grants. It is stateless and safe
// for concurrent use.
type Codec struct {
	aead cipher.AEAD

	// now is swappable for tests.
	now func() time.Time
}

// NewCodec derives the sealing key from the configured secret material via
// HKDF-SHA256 and prepares the AEAD. The secret can be any length; the
// derivation step means operators don't have to supply exactly 32 bytes.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token: empty secret")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, secret, nil, []byte("linguastream/audio-access-token/v1"))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("token: derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("token: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("token: create GCM: %w", err)
	}

	return &Codec{aead: aead, now: time.Now}, nil
}

// Issue fills the grant's timestamps and nonce, seals it and returns the
// opaque URL-safe token together with the grant as sealed. The caller
// supplies identity, resource tuple and action; everything time-related
// belongs to the codec.
func (c *Codec) Issue(g domain.Grant) (string, domain.Grant, error) {
	now := c.now()
	g.IssuedAt = now.Unix()
	g.ExpiresAt = now.Add(TTL).Unix()
	g.Nonce = idx.New().String()

	plaintext, err := json.Marshal(g)
	if err != nil {
		return "", domain.Grant{}, fmt.Errorf("token: marshal grant: %w", err)
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", domain.Grant{}, fmt.Errorf("token: generate nonce: %w", err)
	}

	// Seal appends ciphertext and tag to the nonce: [nonce][ct][tag].
	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), g, nil
}

// Parse decrypts and deserializes an issued token. Any failure - encoding,
// ciphertext length, auth tag, JSON shape - collapses to ErrInvalidToken;
// callers never see a partially decoded grant.
func (c *Codec) Parse(opaque string) (domain.Grant, error) {
	raw, err := base64.RawURLEncoding.DecodeString(opaque)
	if err != nil {
		return domain.Grant{}, ErrInvalidToken
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return domain.Grant{}, ErrInvalidToken
	}
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return domain.Grant{}, ErrInvalidToken
	}

	var g domain.Grant
	if err := json.Unmarshal(plaintext, &g); err != nil {
		return domain.Grant{}, ErrInvalidToken
	}
	if !g.Action.Valid() {
		return domain.Grant{}, ErrInvalidToken
	}

	return g, nil
}

// Validate checks a parsed grant against the operation being performed.
// Replay within the TTL is accepted; all validation lives here so nonce
// tracking could be added in one place later.
func (c *Codec) Validate(g domain.Grant, required domain.Action) error {
	if g.Action != required {
		return ErrWrongAction
	}

	now := c.now()
	if g.Expired(now) {
		return ErrExpired
	}

	issued := time.Unix(g.IssuedAt, 0)
	if d := now.Sub(issued); d > skewTolerance || d < -skewTolerance {
		return ErrClockSkew
	}

	return nil
}
