// Package vault stores a credential bundle on disk, encrypted at rest with
// AES-256-GCM. The encryption key is derived from a passphrase and a per-write
// random salt using HKDF-SHA256.
package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/crypto/hkdf"
)

const currentVersion = 1

var _ error = &ErrInvalidPassphrase{}

// ErrInvalidPassphrase indicates that the stored payload could not be decrypted,
// typically because the passphrase does not match the one it was saved with.
type ErrInvalidPassphrase struct {
	Err error
}

func (e *ErrInvalidPassphrase) Error() string {
	if e.Err != nil {
		return "invalid passphrase: " + e.Err.Error()
	}
	return "invalid passphrase"
}

func (e *ErrInvalidPassphrase) Unwrap() error {
	return e.Err
}

// A Vault stores a single value of type T in an encrypted file.
// Load returns os.ErrNotExist when no file has been saved yet.
type Vault[T any] struct {
	fs         afero.Fs
	path       string
	passphrase string
	lock       sync.Mutex
}

func New[T any](path string, passphrase string) *Vault[T] {
	return newWithFS[T](afero.NewOsFs(), path, passphrase)
}

func newWithFS[T any](fs afero.Fs, path string, passphrase string) *Vault[T] {
	return &Vault[T]{
		fs:         fs,
		path:       path,
		passphrase: passphrase,
	}
}

// envelope is the on-disk format: a versioned JSON document wrapping the salt and
// the encrypted payload.
type envelope struct {
	Salt    []byte `json:"salt"`
	Payload []byte `json:"payload"`
	Version int    `json:"version"`
}

func (v *Vault[T]) Load() (T, error) {
	var value T
	v.lock.Lock()
	defer v.lock.Unlock()

	data, err := afero.ReadFile(v.fs, v.path)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return value, os.ErrNotExist
		}
		return value, err
	}

	var env envelope
	if err = json.Unmarshal(data, &env); err != nil {
		return value, fmt.Errorf("unrecognized file format: %w", err)
	}
	if env.Version != currentVersion {
		return value, fmt.Errorf("unsupported version %d", env.Version)
	}

	key, err := deriveKey(v.passphrase, env.Salt)
	if err != nil {
		return value, fmt.Errorf("derive key: %w", err)
	}
	clearData, err := decrypt(env.Payload, key)
	if err != nil {
		return value, &ErrInvalidPassphrase{Err: err}
	}
	if err = json.Unmarshal(clearData, &value); err != nil {
		return value, fmt.Errorf("decode payload: %w", err)
	}
	return value, nil
}

func (v *Vault[T]) Save(value T) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	env := envelope{
		Version: currentVersion,
		Salt:    make([]byte, sha256.Size),
	}
	if _, err := rand.Read(env.Salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	clearData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	key, err := deriveKey(v.passphrase, env.Salt)
	if err != nil {
		return fmt.Errorf("derive key: %w", err)
	}
	if env.Payload, err = encrypt(clearData, key); err != nil {
		return fmt.Errorf("encrypt payload: %w", err)
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return afero.WriteFile(v.fs, v.path, data, 0600)
}

// deriveKey derives a 32-byte encryption key from the passphrase and salt.
func deriveKey(passphrase string, salt []byte) ([]byte, error) {
	key := make([]byte, 32)
	_, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), salt, nil), key)
	return key, err
}

func encrypt(data []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, data, nil), nil
}

func decrypt(data []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, errors.New("invalid ciphertext")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
