package auth

import (
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	t.Parallel()
	m := NewManager("secret")

	hash, err := m.HashPassword("p@ssw0rd")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "p@ssw0rd" {
		t.Fatal("пароль не должен храниться открытым текстом")
	}
	if !m.CheckPassword(hash, "p@ssw0rd") {
		t.Error("верный пароль не прошел проверку")
	}
	if m.CheckPassword(hash, "wrong") {
		t.Error("неверный пароль прошел проверку")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewManager("secret")

	token, err := m.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	userID, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewManager("secret-one").IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := NewManager("secret-two").ParseToken(token); err == nil {
		t.Error("токен с чужой подписью должен отклоняться")
	}
}

func TestTokenGarbage(t *testing.T) {
	t.Parallel()

	if _, err := NewManager("secret").ParseToken("not-a-token"); err == nil {
		t.Error("мусорный токен должен отклоняться")
	}
}
