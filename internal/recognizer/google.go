package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/transcript"
)

type implGoogle struct {
	cfg    *config.Config
	audio  audio.Audio
	logger logger.Logger
	client *http.Client
}

// googleResponse mirrors one JSON line of the Web Speech API response.
type googleResponse struct {
	Result []struct {
		Alternative []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternative"`
		Final bool `json:"final"`
	} `json:"result"`
}

// Recognize sends the audio to the Google Web Speech API as FLAC and picks
// the best alternative. The API returns no segment timing, so the transcript
// is untimed and timestamp rendering falls back to estimation.
func (g *implGoogle) Recognize(ctx context.Context, wavPath string) (transcript.Transcript, error) {
	g.logger.Info(ctx, "Transcribing with Google Web Speech API: %s", wavPath)

	flacPath, err := g.audio.EncodeFLAC(ctx, wavPath, filepath.Dir(wavPath))
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("encode flac: %w", err)
	}
	defer os.Remove(flacPath)

	payload, err := os.ReadFile(flacPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("read flac: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.requestURL(), bytes.NewReader(payload))
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/x-flac; rate=16000")

	resp, err := g.client.Do(req)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("speech api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return transcript.Transcript{}, fmt.Errorf("speech api returned %s", resp.Status)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		return transcript.Transcript{}, fmt.Errorf("read response: %w", err)
	}

	text, err := parseGoogleResponse(body.String())
	if err != nil {
		return transcript.Transcript{}, err
	}

	g.logger.Info(ctx, "Transcription completed: %d characters", len(text))

	return transcript.Transcript{
		Language: g.language(),
		Segments: []transcript.Segment{{Text: text}},
		Timed:    false,
	}, nil
}

func (g *implGoogle) requestURL() string {
	params := url.Values{}
	params.Set("client", "chromium")
	params.Set("lang", g.language())
	params.Set("key", g.cfg.Recognition.Google.APIKey)
	return g.cfg.Recognition.Google.Endpoint + "?" + params.Encode()
}

// language maps "auto" to the API default; the endpoint has no detection mode.
func (g *implGoogle) language() string {
	if g.cfg.Recognition.Language == "auto" {
		return "en-US"
	}
	return g.cfg.Recognition.Language
}

// parseGoogleResponse handles the JSON-lines response format: the first line
// is usually an empty result, a later line carries the alternatives.
func parseGoogleResponse(body string) (string, error) {
	var texts []string

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var parsed googleResponse
		if err := json.Unmarshal([]byte(line), &parsed); err != nil {
			return "", fmt.Errorf("parse speech api response: %w", err)
		}

		for _, result := range parsed.Result {
			if len(result.Alternative) == 0 {
				continue
			}

			// Pick the alternative with the highest confidence; entries
			// without a confidence score keep their API ordering.
			best := result.Alternative[0]
			for _, alt := range result.Alternative[1:] {
				if alt.Confidence > best.Confidence {
					best = alt
				}
			}
			if t := strings.TrimSpace(best.Transcript); t != "" {
				texts = append(texts, t)
			}
		}
	}

	if len(texts) == 0 {
		return "", ErrNoSpeech
	}

	return strings.Join(texts, " "), nil
}
