package strutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty string", "", 10, ""},
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 5, "hello..."},
		{"negative maxLen", "hello", -1, ""},
		{"zero maxLen", "hello", 0, ""},
		{"unicode safety", "中文测试abc", 4, "中文测试..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("The cat JUMPED over, the dog slept.", 3)
	// Only words longer than 3 runes qualify, lowercased, punctuation stripped.
	want := []string{"jumped", "over", "slept"}
	if len(got) != len(want) {
		t.Fatalf("Words() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSharedWordCount(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		minLen   int
		expected int
	}{
		{"no overlap", "apple banana", "cherry grape", 3, 0},
		{"single shared word", "starting a business plan", "my business idea", 3, 1},
		{"duplicates count once", "focus focus focus", "focus is key to focus", 3, 1},
		{"case insensitive", "Morning ROUTINE", "routine every morning", 3, 2},
		{"short words excluded", "the cat sat", "the cat ran", 3, 0},
		{"empty input", "", "anything here", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SharedWordCount(tt.a, tt.b, tt.minLen); got != tt.expected {
				t.Errorf("SharedWordCount(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a\t b\n\nc  "); got != "a b c" {
		t.Errorf("NormalizeSpace() = %q", got)
	}
}
