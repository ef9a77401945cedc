package tracker

import "strings"

// InterestScorer rates how strongly a message signals purchase intent.
type InterestScorer interface {
	Score(text string) int
}

var (
	defaultKeywords = []string{
		"buy", "purchase", "order", "get this", "take it", "want this",
		"interested in", "looks good", "perfect", "exactly what",
		"how much", "price", "cost", "afford", "budget", "payment",
		"when can i", "available", "in stock", "reserve", "hold",
		"size", "fit", "try on", "store location", "pickup", "delivery",
	}
	defaultPhrases = []string{
		"i want", "i'll take", "can i buy", "how do i order",
		"where can i", "i need these", "perfect for me",
	}
)

// KeywordScorer scores 1 when a message hits at least MinHits keywords or any
// high-confidence phrase, and 0 otherwise. Matching is case-insensitive substring.
type KeywordScorer struct {
	Keywords []string
	Phrases  []string
	MinHits  int
}

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		Keywords: defaultKeywords,
		Phrases:  defaultPhrases,
		MinHits:  2,
	}
}

func (k *KeywordScorer) Score(text string) int {
	lower := strings.ToLower(text)

	hits := 0
	for _, kw := range k.Keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	if hits >= k.MinHits {
		return 1
	}
	for _, p := range k.Phrases {
		if strings.Contains(lower, p) {
			return 1
		}
	}
	return 0
}
