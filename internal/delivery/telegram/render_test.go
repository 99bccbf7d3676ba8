package telegram

import "testing"

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "heading", in: "## Estructura", want: "<b>Estructura</b>"},
		{name: "bold heading", in: "### **Título I**", want: "<b>Título I</b>"},
		{name: "bullet", in: "- uno **dos**", want: "• uno <b>dos</b>"},
		{name: "star bullet", in: "* elemento", want: "• elemento"},
		{name: "italic", in: "texto *en cursiva*", want: "texto <i>en cursiva</i>"},
		{name: "code", in: "usa `ls -la`", want: "usa <code>ls -la</code>"},
		{name: "escapes html", in: "a < b & c", want: "a &lt; b &amp; c"},
		{name: "trims blank edges", in: "\n\nuno\r\ndos\n\n", want: "uno\ndos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderMarkdown(tt.in); got != tt.want {
				t.Errorf("renderMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{in: "corto", n: 10, want: "corto"},
		{in: "exacto", n: 6, want: "exacto"},
		{in: "canción larga", n: 7, want: "canción…"},
		{in: "uno dos", n: 4, want: "uno…"},
	}

	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
