package config

import "testing"

func TestLoad_CORSOriginsDefaultNotEmpty(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()
	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		t.Fatal("default CORS origins must not be empty, cors middleware refuses an empty list")
	}
}

func TestCORSOrigins_TrimsAndSkipsEmpty(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.com , ,https://admin.example.com ")

	cfg := Load()
	origins := cfg.CORSOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %v", origins)
	}
	if origins[0] != "https://app.example.com" || origins[1] != "https://admin.example.com" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}
