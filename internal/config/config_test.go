package config

import (
	"reflect"
	"testing"
)

func TestSplitOriginsHandlesCommaSeparatedValues(t *testing.T) {
	cases := []struct {
		value    string
		expected []string
	}{
		{"http://localhost:3000", []string{"http://localhost:3000"}},
		{"https://a.example,https://b.example", []string{"https://a.example", "https://b.example"}},
		{" https://a.example , https://b.example ", []string{"https://a.example", "https://b.example"}},
		{"https://a.example,,", []string{"https://a.example"}},
		{"", nil},
	}

	for _, tc := range cases {
		if got := splitOrigins(tc.value); !reflect.DeepEqual(got, tc.expected) {
			t.Errorf("splitOrigins(%q) = %v, expected %v", tc.value, got, tc.expected)
		}
	}
}

func TestLoadParsesMultipleCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example,https://admin.example")

	cfg := Load()

	expected := []string{"https://app.example", "https://admin.example"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, expected) {
		t.Errorf("Expected origins %v, got %v", expected, cfg.CORS.AllowedOrigins)
	}
}
