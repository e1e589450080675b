package gemini

import (
	"context"
	"testing"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "some-model"); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestNewGeneratorDefaultsModel(t *testing.T) {
	gen, err := NewGenerator(context.Background(), "test-key", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.Model() != defaultModel {
		t.Fatalf("expected default model %q, got %q", defaultModel, gen.Model())
	}
}
