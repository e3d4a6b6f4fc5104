package caches

import (
	"sort"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"tablestakes.com/headsup/poker"
)

// ScoreCache memoizes hand evaluations keyed by the card set. Seven card
// evaluations walk 21 five card subsets, so a bot estimating strength on
// every street hits the same boards repeatedly.
type ScoreCache struct {
	cache *lru.Cache
}

func NewScoreCache(size int) (*ScoreCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create lru cache")
	}
	return &ScoreCache{cache: cache}, nil
}

// Key is order independent so that [Ah Ks] and [Ks Ah] share an entry.
func (sc *ScoreCache) Key(cards []poker.Card) string {
	bytes := make([]byte, 0, len(cards))
	for _, card := range cards {
		bytes = append(bytes, card.Byte())
	}
	sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })
	return string(bytes)
}

func (sc *ScoreCache) Lookup(key string) (poker.Score, bool) {
	v, ok := sc.cache.Get(key)
	if !ok {
		return poker.Score{}, false
	}
	return v.(poker.Score), true
}

func (sc *ScoreCache) Store(key string, score poker.Score) {
	sc.cache.Add(key, score)
}

// Evaluate scores the cards through the cache.
func (sc *ScoreCache) Evaluate(cards []poker.Card) poker.Score {
	key := sc.Key(cards)
	if score, ok := sc.Lookup(key); ok {
		return score
	}
	score := poker.Evaluate(cards)
	sc.Store(key, score)
	return score
}
