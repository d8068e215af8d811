package service

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := IssueToken("player-42")
	if err != nil {
		t.Fatalf("выдача токена не удалась: %v", err)
	}

	id, err := ParseToken(token)
	if err != nil {
		t.Fatalf("разбор токена не удался: %v", err)
	}
	if id != "player-42" {
		t.Fatalf("id=%q, ожидался player-42", id)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("мусорный токен должен отклоняться")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	InitJWT()
	token, err := IssueToken("p1")
	if err != nil {
		t.Fatalf("выдача токена не удалась: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-b")
	InitJWT()
	if _, err := ParseToken(token); err == nil {
		t.Fatal("токен с чужой подписью должен отклоняться")
	}
}

func TestIssueToken_Disabled(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	InitJWT()

	if Enabled() {
		t.Fatal("без секрета подпись выключена")
	}
	if _, err := IssueToken("p1"); err == nil {
		t.Fatal("без секрета токены не выдаются")
	}
}
