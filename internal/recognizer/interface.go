package recognizer

import (
	"context"
	"errors"

	"github.com/minhtri0502/speech-flow/internal/transcript"
)

const (
	// EngineWhisper runs whisper.cpp locally.
	EngineWhisper = "whisper"
	// EngineGoogle calls the Google Web Speech API.
	EngineGoogle = "google"
)

// ErrNoSpeech is returned when the engine could not find any speech in the
// audio (poor audio quality, wrong language setting, background noise).
var ErrNoSpeech = errors.New("no speech recognized")

// Recognizer converts a 16kHz mono WAV file into a transcript.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string) (transcript.Transcript, error)
}
