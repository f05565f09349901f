package sealed

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Box seals and opens credential blobs with XChaCha20-Poly1305. Sealed bytes
// are nonce || ciphertext+tag, so corrupted or tampered input fails to open.
type Box struct {
	aead cipher.AEAD
}

// NewBox builds a Box from a 32-byte key.
func NewBox(key []byte) (*Box, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &Box{aead: aead}, nil
}

// KeyFromString decodes a hex- or base64-encoded 32-byte key.
func KeyFromString(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty seal key")
	}
	if b, err := hex.DecodeString(s); err == nil && len(b) == chacha20poly1305.KeySize {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == chacha20poly1305.KeySize {
		return b, nil
	}
	return nil, errors.New("seal key must decode to 32 bytes (hex or base64)")
}

func (b *Box) Seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return b.aead.Seal(nonce, nonce, plain, nil), nil
}

func (b *Box) Open(sealedBytes []byte) ([]byte, error) {
	if len(sealedBytes) < b.aead.NonceSize()+b.aead.Overhead() {
		return nil, errors.New("sealed credential too short")
	}
	nonce, ct := sealedBytes[:b.aead.NonceSize()], sealedBytes[b.aead.NonceSize():]
	plain, err := b.aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("sealed credential failed authentication: %w", err)
	}
	return plain, nil
}
