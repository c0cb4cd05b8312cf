package persistence

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/loomcraft/vbed/pkg/machine"
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption with
	// the active key fails. This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

// envelope is the stored form of an encrypted snapshot. It stays valid
// JSON so file-backed stores keep readable files.
type envelope struct {
	Encrypted string `json:"encrypted"`
}

// Encrypted is a Codec that seals another codec's output with
// AES-256-GCM.
type Encrypted struct {
	inner  Codec
	config EncryptionConfig
}

// NewEncrypted wraps inner with encryption. A nil inner defaults to
// compact JSON.
func NewEncrypted(inner Codec, config EncryptionConfig) (*Encrypted, error) {
	if len(config.ActiveKey) != 32 {
		return nil, fmt.Errorf("active key must be 32 bytes (AES-256), got %d", len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != 32 {
			return nil, fmt.Errorf("fallback key %d must be 32 bytes (AES-256), got %d", i, len(k))
		}
	}
	if inner == nil {
		inner = JSON{}
	}
	return &Encrypted{inner: inner, config: config}, nil
}

func (e *Encrypted) Encode(snap machine.Snapshot) ([]byte, error) {
	plain, err := e.inner.Encode(snap)
	if err != nil {
		return nil, err
	}

	ciphertext, err := encrypt(plain, e.config.ActiveKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt snapshot: %w", err)
	}

	return json.Marshal(envelope{
		Encrypted: base64.StdEncoding.EncodeToString(ciphertext),
	})
}

func (e *Encrypted) Decode(data []byte) (machine.Snapshot, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return machine.Snapshot{}, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	// Fail secure: with encryption configured, plain snapshots are
	// rejected rather than passed through.
	if env.Encrypted == "" {
		return machine.Snapshot{}, errors.New("stored data is missing the encrypted envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(env.Encrypted)
	if err != nil {
		return machine.Snapshot{}, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plain, err := decryptWithRotation(ciphertext, e.config.ActiveKey, e.config.FallbackKeys)
	if err != nil {
		return machine.Snapshot{}, fmt.Errorf("failed to decrypt snapshot: %w", err)
	}

	return e.inner.Decode(plain)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
