package vault

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
)

type secret struct {
	Value string `json:"value"`
}

func TestVault(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := newWithFS[secret](fs, "/data/token.enc", "passphrase")

	// nothing saved yet
	if _, err := v.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got: %v", err)
	}

	if err := v.Save(secret{Value: "foo"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := v.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Value != "foo" {
		t.Fatalf("unexpected value: %+v", got)
	}

	// data at rest is encrypted
	raw, err := afero.ReadFile(fs, "/data/token.enc")
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(raw) == "" || string(raw) == `{"value":"foo"}` {
		t.Fatal("payload stored in the clear")
	}

	// wrong passphrase
	_, err = newWithFS[secret](fs, "/data/token.enc", "wrong").Load()
	var invalidPassphrase *ErrInvalidPassphrase
	if !errors.As(err, &invalidPassphrase) {
		t.Fatalf("expected ErrInvalidPassphrase, got: %v", err)
	}
}

func TestVault_OnDisk(t *testing.T) {
	path := t.TempDir() + "/token.enc"
	v := New[secret](path, "passphrase")
	if err := v.Save(secret{Value: "bar"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := New[secret](path, "passphrase").Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Value != "bar" {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestVault_InvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	v := newWithFS[secret](fs, "/data/token.enc", "passphrase")

	// not an envelope
	if err := afero.WriteFile(fs, "/data/token.enc", []byte("not json"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := v.Load(); err == nil {
		t.Fatal("expected error from corrupt file")
	}

	// unsupported version
	data, _ := json.Marshal(envelope{Version: 2})
	if err := afero.WriteFile(fs, "/data/token.enc", data, 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := v.Load(); err == nil {
		t.Fatal("expected error from unsupported version")
	}
}
