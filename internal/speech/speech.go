package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no speech client is available
var ErrNotConfigured = errors.New("speech synthesis not configured")

// Synthesizer converts words to mp3 audio and caches the files on disk
type Synthesizer struct {
	client   *openai.Client
	model    string
	voice    string
	cacheDir string
	logger   *zap.Logger
}

// NewSynthesizer creates a new synthesizer; a nil client disables synthesis
func NewSynthesizer(client *openai.Client, model, voice, cacheDir string, logger *zap.Logger) *Synthesizer {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &Synthesizer{
		client:   client,
		model:    model,
		voice:    voice,
		cacheDir: cacheDir,
		logger:   logger,
	}
}

// Speak returns the path of an mp3 file pronouncing text
func (s *Synthesizer) Speak(ctx context.Context, text string) (string, error) {
	name := cacheName(text)
	if name == "" {
		return "", fmt.Errorf("nothing to pronounce in %q", text)
	}

	path := filepath.Join(s.cacheDir, name+".mp3")
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path, nil
	}

	if s.client == nil {
		return "", ErrNotConfigured
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          strings.TrimSpace(text),
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("create speech: %w", err)
	}
	defer resp.Close()

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create audio cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.cacheDir, name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close audio file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("store audio: %w", err)
	}

	s.logger.Debug("Synthesized speech", zap.String("text", text), zap.String("path", path))

	return path, nil
}

// cacheName maps text to a filesystem-safe lowercase name
func cacheName(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '\'':
			b.WriteRune('_')
		}
	}
	return b.String()
}
