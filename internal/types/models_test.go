package types

import "testing"

func TestTranscriptName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"recording.mp3", "recording.txt"},
		{"Team Standup 2025-12-01.m4a", "Team Standup 2025-12-01.txt"},
		{"archive.tar.gz", "archive.tar.txt"}, // only the final extension is stripped
		{"noextension", "noextension.txt"},
		{"weird.name.with.dots.wav", "weird.name.with.dots.txt"},
	}
	for _, c := range cases {
		if got := TranscriptName(c.name); got != c.want {
			t.Errorf("TranscriptName(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestStem(t *testing.T) {
	if got := Stem("call.mp3"); got != "call" {
		t.Errorf("Stem(call.mp3) = %q", got)
	}
	if got := Stem("call"); got != "call" {
		t.Errorf("Stem(call) = %q", got)
	}
}
