package crypto

import "testing"

func TestNewKeyring_PrefersEnvironment(t *testing.T) {
	t.Setenv(EnvKey, "s3cret")

	k := NewKeyring()
	if !k.IsAvailable() {
		t.Fatalf("expected env keyring to be available")
	}
	key, err := k.GetKey()
	if err != nil || key != "s3cret" {
		t.Fatalf("expected key from environment, got %q (%v)", key, err)
	}
	if err := k.SetKey(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
