package speech

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// GoogleSynthesizer renders clips through Google Cloud Text-to-Speech. The
// emotion/dialect instruction is a CosyVoice concept; Google voices carry
// their character in the voice name, so only the bare sentence is sent.
type GoogleSynthesizer struct {
	client       *texttospeech.Client
	defaultVoice string
}

func NewGoogleSynthesizer(ctx context.Context, defaultVoice string) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	if defaultVoice == "" {
		defaultVoice = "cmn-CN-Wavenet-A"
	}
	return &GoogleSynthesizer{client: client, defaultVoice: defaultVoice}, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	voice := req.Voice
	if voice == "" {
		voice = g.defaultVoice
	}

	resp, err := g.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: req.Text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageCode(voice),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", ErrInvalidResponse)
	}
	return resp.AudioContent, nil
}

// ListVoices returns the names of voices the service offers.
func (g *GoogleSynthesizer) ListVoices(ctx context.Context) ([]string, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	voices := make([]string, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

func (g *GoogleSynthesizer) Close() error {
	return g.client.Close()
}

// languageCode derives the BCP-47 code from a Google voice name, e.g.
// "cmn-CN-Wavenet-A" -> "cmn-CN".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "cmn-CN"
}
