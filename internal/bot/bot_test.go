package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage(t *testing.T) {
	t.Run("short text passes through", func(t *testing.T) {
		parts := splitMessage("привет")
		if len(parts) != 1 || parts[0] != "привет" {
			t.Errorf("parts = %q, want single original message", parts)
		}
	})

	t.Run("splits on line boundaries", func(t *testing.T) {
		line := strings.Repeat("я", 100)
		lines := make([]string, 40)
		for i := range lines {
			lines[i] = line
		}
		text := strings.Join(lines, "\n")

		parts := splitMessage(text)

		if len(parts) < 2 {
			t.Fatalf("expected a split, got %d part(s)", len(parts))
		}
		for i, part := range parts {
			if len(part) > messageLimit {
				t.Errorf("part %d is %d bytes, over the limit", i, len(part))
			}
			for _, l := range strings.Split(part, "\n") {
				if l != line {
					t.Errorf("part %d contains a torn line of %d bytes", i, len(l))
				}
			}
		}
	})

	t.Run("unbreakable cyrillic text cuts on rune boundaries", func(t *testing.T) {
		text := strings.Repeat("ы", 3*messageLimit)

		parts := splitMessage(text)

		if len(parts) < 2 {
			t.Fatalf("expected a split, got %d part(s)", len(parts))
		}
		for i, part := range parts {
			if len(part) > messageLimit {
				t.Errorf("part %d is %d bytes, over the limit", i, len(part))
			}
			if !utf8.ValidString(part) {
				t.Errorf("part %d is not valid utf-8", i)
			}
		}
		if joined := strings.Join(parts, ""); joined != text {
			t.Error("parts do not reassemble into the original text")
		}
	})
}
