package util

import (
	"testing"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaces become underscores", "My Great Video", "My_Great_Video"},
		{"punctuation becomes underscores", "Q&A: Go 1.26!", "Q_A__Go_1_26_"},
		{"underscores preserved", "already_clean_title", "already_clean_title"},
		{"unicode letters preserved", "Gespräch über Go", "Gespräch_über_Go"},
		{"digits preserved", "Episode 42", "Episode_42"},
		{"empty string", "", ""},
		{"only punctuation", "?!.", "___"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeTitle(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeTitle(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeTitlePreservesLength(t *testing.T) {
	inputs := []string{"a b c", "hello, world!", "___", "tab\there"}
	for _, in := range inputs {
		got := SanitizeTitle(in)
		if len([]rune(got)) != len([]rune(in)) {
			t.Errorf("SanitizeTitle(%q) changed rune length: got %q", in, got)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"removes control chars", "hello\x00world", "helloworld"},
		{"removes tabs and newlines", "line1\n\tline2", "line1line2"},
		{"empty string", "", ""},
		{"no changes needed", "clean", "clean"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeString(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeEnvValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"strips double quotes", `"value"`, "value"},
		{"strips single quotes", `'value'`, "value"},
		{"trims whitespace", "  value  ", "value"},
		{"strips quotes and trims", `  "value"  `, "value"},
		{"no quotes", "value", "value"},
		{"empty string", "", ""},
		{"mismatched quotes", `"value'`, `"value'`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeEnvValue(tc.input)
			if got != tc.want {
				t.Errorf("SanitizeEnvValue(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
