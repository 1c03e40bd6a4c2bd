package recognizer

import (
	"errors"
	"testing"
)

func TestParseGoogleResponse(t *testing.T) {
	body := `{"result":[]}
{"result":[{"alternative":[{"transcript":"hello world","confidence":0.92},{"transcript":"hollow world","confidence":0.41}],"final":true}],"result_index":0}`

	text, err := parseGoogleResponse(body)
	if err != nil {
		t.Fatalf("parseGoogleResponse() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("parseGoogleResponse() = %q, want %q", text, "hello world")
	}
}

func TestParseGoogleResponsePicksHighestConfidence(t *testing.T) {
	body := `{"result":[{"alternative":[{"transcript":"low","confidence":0.2},{"transcript":"high","confidence":0.9}],"final":true}]}`

	text, err := parseGoogleResponse(body)
	if err != nil {
		t.Fatalf("parseGoogleResponse() error = %v", err)
	}
	if text != "high" {
		t.Errorf("parseGoogleResponse() = %q, want %q", text, "high")
	}
}

func TestParseGoogleResponseMultipleResults(t *testing.T) {
	body := `{"result":[{"alternative":[{"transcript":"first part","confidence":0.9}],"final":true},{"alternative":[{"transcript":"second part","confidence":0.8}],"final":true}]}`

	text, err := parseGoogleResponse(body)
	if err != nil {
		t.Fatalf("parseGoogleResponse() error = %v", err)
	}
	if text != "first part second part" {
		t.Errorf("parseGoogleResponse() = %q", text)
	}
}

func TestParseGoogleResponseNoSpeech(t *testing.T) {
	_, err := parseGoogleResponse(`{"result":[]}`)
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("parseGoogleResponse() error = %v, want ErrNoSpeech", err)
	}
}

func TestParseGoogleResponseMalformed(t *testing.T) {
	_, err := parseGoogleResponse(`not json`)
	if err == nil {
		t.Error("parseGoogleResponse() should fail on malformed input")
	}
}

func TestLangCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"zh-TW", "zh"},
		{"zh-CN", "zh"},
		{"en-US", "en"},
		{"ja-JP", "ja"},
		{"ko-KR", "ko"},
		{"auto", "auto"},
		{"vi", "vi"},
	}

	for _, tt := range tests {
		if got := langCode(tt.in); got != tt.want {
			t.Errorf("langCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
