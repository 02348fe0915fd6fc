package assistant

import (
	"strings"

	"littlex/internal/core"
)

const summaryLimit = 150

// LocalSummary is the deterministic summarizer used whenever the provider
// is unavailable: short text passes through, longer text is cut at the
// first sentence boundary, or at summaryLimit runes when there is none.
func LocalSummary(text string) string {
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= summaryLimit {
		return text
	}

	if head, _, found := strings.Cut(text, "."); found && strings.TrimSpace(head) != "" {
		return strings.TrimSpace(head) + "..."
	}

	return string(runes[:summaryLimit]) + "..."
}

func fallbackArticles() []core.Article {
	return []core.Article{
		{Title: "How to find quality products online", Source: "StyleGuide", URL: "https://example.com/1"},
		{Title: "Restaurant guide for food lovers", Source: "EatWell", URL: "https://example.com/2"},
		{Title: "Travel tips and recommendations", Source: "TravelBlog", URL: "https://example.com/3"},
	}
}

func fallbackImageAnalysis() core.ImageAnalysis {
	return core.ImageAnalysis{
		Info: "Image analysis unavailable (OpenAI API key not configured)",
		DetectedProducts: []core.TaggedEntity{
			{Type: "product", Name: "Unknown Item"},
		},
		DetectedPlaces: []core.TaggedEntity{
			{Type: "place", Name: "Unknown Location"},
		},
		Suggestions: []string{
			"Configure OPENAI_API_KEY for image analysis",
			"Upload to Google Images for reverse product search",
			"Use Google Lens for place identification",
		},
	}
}
