// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"golang.org/x/time/rate"

	"github.com/jeranaias/ambient/internal/config"
	"github.com/jeranaias/ambient/internal/mood"
	"github.com/jeranaias/ambient/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// SignalWeight is the weight of a fully confident model verdict. It is set
// so a confident model outweighs a couple of keyword hits but not a
// conversation full of them.
const SignalWeight = 5.0

// MaxInputRunes caps the conversation excerpt sent to the model.
const MaxInputRunes = 4000

const maxOutputTokens = 200

// ErrNoAPIKey is returned when neither the settings nor OPENAI_API_KEY
// provide a key.
var ErrNoAPIKey = errors.New("llm: no API key configured")

const instructions = `You label the emotional atmosphere of a chat conversation.
Choose exactly one mood from the allowed list that best fits the most recent messages.
Use "neutral" when nothing stands out. Confidence is between 0 and 1.
Reply with JSON only.`

// Classification is the model's verdict.
type Classification struct {
	Mood       string  `json:"mood" jsonschema:"enum=neutral,enum=heated,enum=romantic,enum=melancholy,enum=excited,enum=mysterious,enum=playful,enum=tense,enum=serene,enum=creative,description=Dominant mood of the conversation"`
	Confidence float64 `json:"confidence" jsonschema:"description=Confidence between 0 and 1"`
	Reason     string  `json:"reason" jsonschema:"description=One short sentence explaining the choice"`
}

var classificationSchema = generateSchema[Classification]()

// =============================================================================
// CLASSIFIER
// =============================================================================

// Options configures a Classifier.
type Options struct {
	APIKey            string
	BaseURL           string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
	// MaxRetries overrides the client's retry count when non-negative.
	MaxRetries int
}

// Classifier asks a model for the mood of a conversation.
type Classifier struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
}

// New creates a classifier. The API key falls back to OPENAI_API_KEY.
func New(opts Options) (*Classifier, error) {
	key := opts.APIKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		return nil, ErrNoAPIKey
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("llm: model is empty")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(key)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.MaxRetries >= 0 {
		clientOpts = append(clientOpts, option.WithMaxRetries(opts.MaxRetries))
	}
	client := openai.NewClient(clientOpts...)

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Classifier{
		client:  &client,
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		timeout: timeout,
	}, nil
}

// FromConfig creates a classifier from the [llm] settings table.
func FromConfig(c config.LLMConfig) (*Classifier, error) {
	return New(Options{
		APIKey:            c.APIKey,
		BaseURL:           c.BaseURL,
		Model:             c.Model,
		RequestsPerMinute: c.RequestsPerMinute,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries:        1,
	})
}

// Classify returns the model's verdict for texts, oldest first. It waits
// for the rate limiter.
func (c *Classifier) Classify(ctx context.Context, texts []string) (Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Classification{}, fmt.Errorf("llm: rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(buildInput(texts), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:        "MoodClassification",
					Schema:      classificationSchema,
					Strict:      openai.Bool(true),
					Description: openai.String("Conversation mood"),
					Type:        "json_schema",
				},
			},
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return Classification{}, fmt.Errorf("llm: classify: %w", err)
	}

	var out Classification
	if err := decodeModelJSON(resp.OutputText(), &out); err != nil {
		return Classification{}, fmt.Errorf("llm: decode classification: %w (model_output_prefix=%q)", err, util.TruncateRunes(resp.OutputText(), 200))
	}
	if _, err := mood.Parse(out.Mood); err != nil {
		return Classification{}, fmt.Errorf("llm: %w", err)
	}
	out.Mood = strings.ToLower(strings.TrimSpace(out.Mood))
	out.Confidence = clamp01(out.Confidence)
	return out, nil
}

// Signals implements the engine's signal source: a non-neutral verdict
// becomes one llm signal weighted by its confidence.
func (c *Classifier) Signals(ctx context.Context, texts []string) ([]mood.Signal, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	verdict, err := c.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}
	m, _ := mood.Parse(verdict.Mood)
	if m == mood.Neutral || verdict.Confidence == 0 {
		return nil, nil
	}
	return []mood.Signal{{Mood: m, Weight: SignalWeight * verdict.Confidence, Source: mood.SourceLLM}}, nil
}

// buildInput numbers the messages and keeps the most recent MaxInputRunes.
func buildInput(texts []string) string {
	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, strings.TrimSpace(t))
	}
	s := b.String()
	if util.RuneLen(s) <= MaxInputRunes {
		return s
	}
	r := []rune(s)
	return string(r[len(r)-MaxInputRunes:])
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
