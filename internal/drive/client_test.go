package drive

import (
	"strings"
	"testing"
)

func TestEscapeQueryValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"it's a name", `it\'s a name`},
		{`back\slash`, `back\\slash`},
		{`both\'mixed`, `both\\\'mixed`},
	}
	for _, c := range cases {
		if got := escapeQueryValue(c.in); got != c.want {
			t.Errorf("escapeQueryValue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestChildByNameQueryEscapesValues(t *testing.T) {
	q := childByNameQuery("folder-1", "bob's call.txt", "text/plain")
	if !strings.Contains(q, `name='bob\'s call.txt'`) {
		t.Fatalf("name not escaped in query: %s", q)
	}
	if !strings.Contains(q, "'folder-1' in parents") {
		t.Fatalf("missing parent clause: %s", q)
	}
	if !strings.Contains(q, "trashed=false") {
		t.Fatalf("missing trashed clause: %s", q)
	}
}

func TestAudioListQuery(t *testing.T) {
	q := audioListQuery("folder-1")
	for _, m := range []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/m4a"} {
		if !strings.Contains(q, "mimeType='"+m+"'") {
			t.Errorf("query missing mime type %s: %s", m, q)
		}
	}
	if !strings.Contains(q, "'folder-1' in parents") {
		t.Fatalf("missing parent clause: %s", q)
	}
}
