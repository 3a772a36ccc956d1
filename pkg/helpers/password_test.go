package helpers

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h == "secret1" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPassword(h, "secret1") {
		t.Fatal("CheckPassword should accept the original password")
	}
}

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password must differ")
	}
	if !CheckPassword(h1, "secret1") || !CheckPassword(h2, "secret1") {
		t.Fatal("both hashes should verify the original password")
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if CheckPassword(h, "secret2") {
		t.Fatal("CheckPassword should reject a different password")
	}
}

func TestCheckPassword_MalformedDigest(t *testing.T) {
	t.Parallel()

	for _, digest := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if CheckPassword(digest, "secret1") {
			t.Fatalf("CheckPassword should reject malformed digest %q", digest)
		}
	}
}
