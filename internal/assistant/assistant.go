// Package assistant is the AI augmentation layer: summaries, entity
// extraction, and image analysis. Every provider call is best effort; a
// failure switches to a deterministic local fallback and is never surfaced
// to the caller. Nothing here touches the feed store or its locks.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"github.com/zhulik/pips"
	"github.com/zhulik/pips/apply"

	"littlex/internal/config"
	"littlex/internal/core"
	"littlex/pkg/deepseek"
)

var providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "littlex_assistant_provider_calls_total",
	Help: "The total number of AI provider calls by outcome",
}, []string{"op", "outcome"})

const (
	openAIBaseURL = "https://api.openai.com/v1"

	summarizeSystem = "You are an AI that creates concise, insightful summaries of tweets."
	summarizePrompt = "Provide a brief, insightful summary of this tweet in 1-2 sentences. Be concise and highlight the main point.\n\nTweet: %q\n\nSummary:"

	recommendSystem = "You recommend relevant articles. Return only valid JSON array."
	recommendPrompt = "Based on this context: %q\n\nRecommend 3 relevant articles. For each, provide:\n- title: Article title\n- source: Publication name\n- url: https://example.com/article\n\nReturn as JSON array with these fields. Return ONLY JSON, no other text."

	imageInfoPrompt = "Based on this image URL (%s), what products and places might be visible? Describe in 2-3 sentences."
)

type chatFunc func(ctx context.Context, system, prompt string) (string, error)

type Assistant struct {
	Logger  *slog.Logger
	Secrets *config.Secrets

	text   *deepseek.Client
	vision *deepseek.Client

	chat       chatFunc
	chatVision chatFunc
}

func (a *Assistant) Init(_ context.Context) error {
	a.Logger = a.Logger.With("component", "assistant.Assistant")

	a.text = deepseek.NewClient(&deepseek.ClientConfig{
		APIKey:            a.Secrets.DeepseekAPIKey,
		TransportSettings: deepseek.DefaultConfig.TransportSettings,
	})
	a.vision = deepseek.NewClient(&deepseek.ClientConfig{
		APIKey:            a.Secrets.OpenAIAPIKey,
		BaseURL:           openAIBaseURL,
		Model:             "gpt-4o-mini",
		TransportSettings: deepseek.DefaultConfig.TransportSettings,
	})

	a.chat = a.text.Chat
	a.chatVision = a.vision.Chat

	if !a.text.Configured() {
		a.Logger.Warn("no DeepSeek API key, text augmentation runs on local fallbacks only")
	}

	return nil
}

func (a *Assistant) Shutdown(_ context.Context) error {
	if err := a.text.Close(); err != nil {
		return err
	}
	return a.vision.Close()
}

// NewAssistant wires an assistant by hand, outside the service lifecycle.
func NewAssistant(logger *slog.Logger, secrets *config.Secrets) *Assistant {
	a := &Assistant{Logger: logger, Secrets: secrets}
	_ = a.Init(context.Background())
	return a
}

// Summarize returns a short summary of text: provider first, deterministic
// local rule if the provider fails or returns nothing.
func (a *Assistant) Summarize(ctx context.Context, text string) string {
	response, err := a.chat(ctx, summarizeSystem, fmt.Sprintf(summarizePrompt, text))
	if err != nil || response == "" {
		providerCalls.WithLabelValues("summarize", "fallback").Inc()
		return LocalSummary(text)
	}

	providerCalls.WithLabelValues("summarize", "ok").Inc()
	return response
}

// Explain analyzes text for a reader: an explanation (translated when
// language is not "en") plus extracted articles, products, and places.
func (a *Assistant) Explain(ctx context.Context, text, language string) core.Explanation {
	extracted := a.ExtractAll(ctx, text)

	prompt := fmt.Sprintf("Briefly explain this text in 2-3 sentences:\n%s", text)
	if language != "" && language != "en" {
		prompt = fmt.Sprintf("Translate and explain this text to %s in 2-3 sentences:\n%s", language, text)
	}

	lang := language
	if lang == "" {
		lang = "en"
	}

	explanation, err := a.chat(ctx, fmt.Sprintf("You are a helpful assistant. Respond in %s.", lang), prompt)
	if err != nil || explanation == "" {
		providerCalls.WithLabelValues("explain", "fallback").Inc()
		explanation = LocalSummary(text)
	} else {
		providerCalls.WithLabelValues("explain", "ok").Inc()
	}

	articles := extracted[core.KindArticle]
	products := extracted[core.KindProduct]
	places := extracted[core.KindPlace]

	return core.Explanation{
		Explanation: explanation,
		Articles:    articles,
		Products:    products,
		Places:      places,
		Detected: core.Detected{
			HasArticles: len(articles) > 0,
			HasProducts: len(products) > 0,
			HasPlaces:   len(places) > 0,
		},
	}
}

// ExtractAll runs entity extraction for every kind through a pipeline and
// groups the results by kind.
func (a *Assistant) ExtractAll(ctx context.Context, text string) map[core.EntityKind][]core.TaggedEntity {
	kinds := []core.EntityKind{core.KindArticle, core.KindProduct, core.KindPlace}

	type kindResult struct {
		kind     core.EntityKind
		entities []core.TaggedEntity
	}

	out := map[core.EntityKind][]core.TaggedEntity{}

	res := pips.New[core.EntityKind, kindResult]().
		Then(apply.Map(func(ctx context.Context, kind core.EntityKind) (kindResult, error) {
			return kindResult{kind, a.Extract(ctx, text, kind)}, nil
		})).
		Run(ctx, lo.SliceToChannel(len(kinds), lo.Map(kinds, func(kind core.EntityKind, _ int) pips.D[core.EntityKind] {
			return pips.NewD(kind)
		})))

	for d := range res {
		r, err := d.Unpack()
		if err != nil {
			continue
		}
		out[r.kind] = r.entities
	}

	return out
}

// Recommend suggests up to three articles for the given context, with a
// fixed generic list when the provider is unavailable.
func (a *Assistant) Recommend(ctx context.Context, about string) []core.Article {
	response, err := a.chat(ctx, recommendSystem, fmt.Sprintf(recommendPrompt, about))
	if err == nil {
		if articles, ok := parseJSONArray[core.Article](response); ok {
			providerCalls.WithLabelValues("recommend", "ok").Inc()
			return articles
		}
	}

	providerCalls.WithLabelValues("recommend", "fallback").Inc()
	return fallbackArticles()
}

// ImageInfo analyzes an image by URL, best effort. Without a configured
// vision provider the response is an honest mock.
func (a *Assistant) ImageInfo(ctx context.Context, imageURL string) core.ImageAnalysis {
	if a.vision.Configured() {
		info, err := a.chatVision(ctx, "", fmt.Sprintf(imageInfoPrompt, imageURL))
		if err == nil && info != "" {
			providerCalls.WithLabelValues("image_info", "ok").Inc()
			return core.ImageAnalysis{
				Info:             info,
				DetectedProducts: []core.TaggedEntity{},
				DetectedPlaces:   []core.TaggedEntity{},
				Suggestions:      []string{"Upload a higher quality image for better analysis"},
			}
		}
	}

	providerCalls.WithLabelValues("image_info", "fallback").Inc()
	return fallbackImageAnalysis()
}
