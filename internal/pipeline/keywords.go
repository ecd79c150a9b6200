package pipeline

import (
	"strings"
	"sync"
)

var defaultAssetKeywords = []string{
	"btc", "eth", "bitcoin", "ethereum", "crypto", "blockchain",
	"defi", "nft", "altcoin", "token",
}

// KeywordSet matches post text against asset keywords using
// case-insensitive substring matching. A post can match any number of
// keywords and counts toward every one it matches.
type KeywordSet struct {
	mu       sync.RWMutex
	keywords []string
	seen     map[string]struct{}
}

// NewKeywordSet builds a set from the given keywords, falling back to the
// default crypto keyword list when none are given.
func NewKeywordSet(keywords ...string) *KeywordSet {
	ks := &KeywordSet{
		seen: make(map[string]struct{}),
	}
	if len(keywords) == 0 {
		keywords = defaultAssetKeywords
	}
	ks.Add(keywords...)
	return ks
}

// Add registers extra keywords, e.g. symbols of currently trending coins.
// Duplicates and empty strings are ignored.
func (ks *KeywordSet) Add(keywords ...string) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	for _, keyword := range keywords {
		normalized := strings.ToLower(strings.TrimSpace(keyword))
		if normalized == "" {
			continue
		}
		if _, dup := ks.seen[normalized]; dup {
			continue
		}
		ks.seen[normalized] = struct{}{}
		ks.keywords = append(ks.keywords, normalized)
	}
}

// Detect returns every keyword the text mentions, in registration order.
func (ks *KeywordSet) Detect(text string) []string {
	ks.mu.RLock()
	defer ks.mu.RUnlock()

	lower := strings.ToLower(text)
	var matched []string
	for _, keyword := range ks.keywords {
		if strings.Contains(lower, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// Keywords returns a copy of the registered keywords.
func (ks *KeywordSet) Keywords() []string {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return append([]string(nil), ks.keywords...)
}
