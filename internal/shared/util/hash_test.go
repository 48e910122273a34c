package util

import (
	"strings"
	"testing"
)

func TestHashKey(t *testing.T) {
	id := "2026-10-17"
	got := HashKey(id)
	if got != HashKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestHashBytesMatchesHashKey(t *testing.T) {
	if HashBytes([]byte("resume")) != HashKey("resume") {
		t.Fatalf("expected HashBytes and HashKey to agree")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "cv.pdf", want: "cv.pdf"},
		{name: "separators", in: " dir/sub\\cv.pdf ", want: "dir_sub_cv.pdf"},
		{name: "traversal", in: "../cv.pdf", wantErr: true},
		{name: "blank", in: "   ", wantErr: true},
		{name: "control characters", in: "cv\x00\t.pdf", want: "cv.pdf"},
		{name: "long name keeps extension", in: strings.Repeat("a", 200) + ".docx", want: strings.Repeat("a", MaxFileNameLength-5) + ".docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
