package huffman

import (
	"encoding/binary"

	"github.com/dchest/siphash"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/exp/slices"
)

const (
	cacheKey0 = 0x6875666663616368 // "huffcach"
	cacheKey1 = 0x636f6465626f6f6b // "codebook"
)

// codebookCache remembers code books by the hash of the header that
// produced them, so decoding many files with the same frequency list
// rebuilds the tree once.
type codebookCache struct {
	entries *lru.Cache[uint64, cachedCodebook]
}

// cachedCodebook keeps the list next to the code book so a hash
// collision can never hand out the wrong tables.
type cachedCodebook struct {
	list RankedFrequencyList
	cb   *Codebook
}

func newCodebookCache(size int) (*codebookCache, error) {
	c, err := lru.New[uint64, cachedCodebook](size)
	if err != nil {
		return nil, err
	}
	return &codebookCache{entries: c}, nil
}

func headerKey(list RankedFrequencyList) uint64 {
	buf := make([]byte, 0, 2+len(list)*10)
	for _, e := range list {
		buf = append(buf, byte(e.Symbol))
		buf = binary.AppendUvarint(buf, e.Count)
	}
	return siphash.Hash(cacheKey0, cacheKey1, buf)
}

// get returns the code book for list, building and caching it on a miss.
func (c *codebookCache) get(list RankedFrequencyList) (*Codebook, bool, error) {
	key := headerKey(list)
	if hit, ok := c.entries.Get(key); ok && hit.list.Equal(list) {
		return hit.cb, true, nil
	}
	cb, err := NewCodebook(list)
	if err != nil {
		return nil, false, err
	}
	c.entries.Add(key, cachedCodebook{list: slices.Clone(list), cb: cb})
	return cb, false, nil
}

func (c *codebookCache) len() int { return c.entries.Len() }
