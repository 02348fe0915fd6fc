package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"littlex/internal/core"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Fixed per-kind vocabularies for the deterministic keyword pass.
var (
	productKeywords = []string{
		"iphone", "android", "samsung", "pixel", "watch", "airpods", "headphones",
		"laptop", "computer", "macbook", "dell", "hp", "lenovo",
		"nike", "adidas", "puma", "reebok", "shoes", "sneakers", "boots",
		"dress", "shirt", "pants", "jacket", "coat", "sweater", "hoodie",
		"amazon", "ebay", "shopify", "store", "shop", "mall",
		"apple", "google", "microsoft", "tesla", "meta",
		"starbucks", "mcdonald", "pizza", "burger", "coffee", "tea",
		"netflix", "spotify", "disney", "youtube", "tiktok", "instagram",
	}

	placeKeywords = []string{
		"paris", "london", "tokyo", "new york", "los angeles", "dubai", "singapore",
		"france", "uk", "japan", "usa", "china", "india", "brazil", "germany", "spain", "italy",
		"restaurant", "cafe", "bar", "hotel", "airport", "station", "mall", "store", "museum",
		"central park", "eiffel tower", "big ben", "statue of liberty", "taj mahal",
		"brooklyn", "manhattan", "chicago", "miami", "boston", "seattle", "denver",
		"street", "avenue", "boulevard", "city", "town", "village", "beach", "mountain", "lake",
	}
)

const (
	extractArticlesSystem = "You are an AI that extracts article references from text. Return only valid JSON."
	extractArticlesPrompt = "Extract article mentions from this text. Return as JSON array with objects containing 'topic' and 'title' fields.\nText: %q\n\nReturn only JSON array, no other text."

	extractProductsSystem = "You extract product mentions from text. Return only valid JSON array."
	extractProductsPrompt = "Identify all products, clothing items, and accessories mentioned in this text.\nReturn as JSON array with objects containing: name, category (clothing/accessory/electronics/other), and context.\nText: %q\n\nReturn ONLY valid JSON array, no other text."

	extractPlacesSystem = "You extract place mentions from text. Return only valid JSON array."
	extractPlacesPrompt = "Identify all places, locations, venues mentioned in this text.\nReturn as JSON array with objects containing: name, category (restaurant/shopping/landmark/accommodation/transportation), and context.\nText: %q\n\nReturn ONLY valid JSON array, no other text."
)

// Extract finds tagged entities of one kind in text. The deterministic pass
// always runs; the provider pass is appended on top when it succeeds.
// Results from the two sources are concatenated, not deduplicated: the
// existing consumers rely on seeing both.
func (a *Assistant) Extract(ctx context.Context, text string, kind core.EntityKind) []core.TaggedEntity {
	switch kind {
	case core.KindArticle:
		return a.extractArticles(ctx, text)
	case core.KindProduct:
		entities := keywordMatch(text, "product", productKeywords, "detected")
		return append(entities, a.providerEntities(ctx, "product", extractProductsSystem, fmt.Sprintf(extractProductsPrompt, text), "other")...)
	case core.KindPlace:
		entities := keywordMatch(text, "place", placeKeywords, "location")
		return append(entities, a.providerEntities(ctx, "place", extractPlacesSystem, fmt.Sprintf(extractPlacesPrompt, text), "landmark")...)
	default:
		return []core.TaggedEntity{}
	}
}

func (a *Assistant) extractArticles(ctx context.Context, text string) []core.TaggedEntity {
	articles := []core.TaggedEntity{}

	for _, raw := range urlPattern.FindAllString(text, -1) {
		source := "Unknown"
		title := "Article"
		if u, err := url.Parse(raw); err == nil && u.Host != "" {
			source = u.Host
			title = "Article from " + u.Host
		}
		articles = append(articles, core.TaggedEntity{
			Type:   "article",
			URL:    raw,
			Source: source,
			Title:  title,
		})
	}

	// The provider pass only runs when the cheap pass found nothing or the
	// text talks about articles explicitly.
	if len(articles) > 0 && !strings.Contains(strings.ToLower(text), "article") {
		return articles
	}

	response, err := a.chat(ctx, extractArticlesSystem, fmt.Sprintf(extractArticlesPrompt, text))
	if err != nil {
		providerCalls.WithLabelValues("extract_article", "fallback").Inc()
		return articles
	}

	parsed, ok := parseJSONArray[struct {
		Topic string `json:"topic"`
		Title string `json:"title"`
	}](response)
	if !ok {
		providerCalls.WithLabelValues("extract_article", "fallback").Inc()
		return articles
	}

	providerCalls.WithLabelValues("extract_article", "ok").Inc()
	for _, item := range parsed {
		topic := item.Topic
		if topic == "" {
			topic = "Unknown"
		}
		title := item.Title
		if title == "" {
			title = "Article"
		}
		articles = append(articles, core.TaggedEntity{
			Type:        "article",
			Topic:       topic,
			Title:       title,
			Description: "Mentioned article about " + topic,
		})
	}

	return articles
}

func (a *Assistant) providerEntities(ctx context.Context, kind, system, prompt, defaultCategory string) []core.TaggedEntity {
	response, err := a.chat(ctx, system, prompt)
	if err != nil {
		providerCalls.WithLabelValues("extract_"+kind, "fallback").Inc()
		return nil
	}

	parsed, ok := parseJSONArray[struct {
		Name     string `json:"name"`
		Category string `json:"category"`
		Context  string `json:"context"`
	}](response)
	if !ok {
		providerCalls.WithLabelValues("extract_"+kind, "fallback").Inc()
		return nil
	}

	providerCalls.WithLabelValues("extract_"+kind, "ok").Inc()

	entities := make([]core.TaggedEntity, 0, len(parsed))
	for _, item := range parsed {
		name := item.Name
		if name == "" {
			name = "Unknown"
		}
		category := item.Category
		if category == "" {
			category = defaultCategory
		}
		entities = append(entities, core.TaggedEntity{
			Type:     kind,
			Name:     name,
			Category: category,
			Context:  clip(item.Context, 100),
		})
	}
	return entities
}

// keywordMatch is the deterministic membership pass: each vocabulary word
// present in the text yields one entity, duplicates within the pass are
// suppressed.
func keywordMatch(text, kind string, vocabulary []string, category string) []core.TaggedEntity {
	lower := strings.ToLower(text)
	seen := map[string]bool{}
	entities := []core.TaggedEntity{}

	for _, keyword := range vocabulary {
		if !seen[keyword] && strings.Contains(lower, keyword) {
			entities = append(entities, core.TaggedEntity{
				Type:     kind,
				Name:     titleCase(keyword),
				Category: category,
				Context:  clip(text, 100),
			})
			seen[keyword] = true
		}
	}

	return entities
}

func parseJSONArray[T any](response string) ([]T, bool) {
	response = strings.TrimSpace(response)
	if !strings.HasPrefix(response, "[") {
		return nil, false
	}

	var parsed []T
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
