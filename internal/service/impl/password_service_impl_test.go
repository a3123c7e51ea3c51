package impl

import (
	"strings"
	"testing"
)

// Low-cost parameters keep the suite fast.
func testPasswordService() *PasswordServiceImpl {
	return NewPasswordServiceWithParams(Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
}

func TestPasswordHashAndVerify(t *testing.T) {
	ps := testPasswordService()

	encoded, err := ps.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}

	if rehash, ok := ps.Verify("correct horse", encoded); !ok || rehash {
		t.Fatalf("expected match without rehash, got ok=%v rehash=%v", ok, rehash)
	}
	if _, ok := ps.Verify("wrong", encoded); ok {
		t.Fatalf("expected mismatch")
	}
}

func TestPasswordHashUsesFreshSalt(t *testing.T) {
	ps := testPasswordService()
	a, _ := ps.Hash("pw")
	b, _ := ps.Hash("pw")
	if a == b {
		t.Fatalf("expected different hashes for the same password")
	}
}

func TestPasswordHashRejectsEmpty(t *testing.T) {
	if _, err := testPasswordService().Hash(""); err != ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestPasswordVerifyPolicyChange(t *testing.T) {
	old := testPasswordService()
	encoded, err := old.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	current := NewPasswordServiceWithParams(Argon2Params{Time: 2, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16})
	rehash, ok := current.Verify("pw", encoded)
	if !ok || !rehash {
		t.Fatalf("expected match with rehash, got ok=%v rehash=%v", ok, rehash)
	}
}

func TestPasswordVerifyMalformed(t *testing.T) {
	ps := testPasswordService()
	for _, encoded := range []string{"", "plain", "$bcrypt$x$y$z$w", "$argon2id$v=19$m=x$a$b"} {
		if _, ok := ps.Verify("pw", encoded); ok {
			t.Fatalf("expected malformed hash %q to fail", encoded)
		}
	}
}
