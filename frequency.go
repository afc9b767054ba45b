package huffman

import (
	"cmp"
	"context"
	"fmt"
	"math/bits"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

const (
	defaultChunkSize   = 1 << 20 // symbols per counting task
	alphabetSize       = maxSymbol + 1
	defaultParallelism = 1
)

// FrequencyEntry pairs a symbol with its number of occurrences.
type FrequencyEntry struct {
	Symbol Symbol
	Count  uint64
}

// FrequencyTable counts symbol occurrences and remembers the order in
// which symbols were first encountered. That order is the tie-break for
// Ranked.
type FrequencyTable struct {
	counts [alphabetSize]uint64
	order  []Symbol
}

// CountFrequencies builds the frequency table of symbols.
func CountFrequencies(symbols []Symbol) (*FrequencyTable, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}
	ft := &FrequencyTable{}
	ft.add(symbols)
	return ft, nil
}

// CountFrequenciesParallel splits symbols into chunks of chunkSize and
// counts them on up to workers goroutines. The merged table is identical
// to the one produced by CountFrequencies, including encounter order.
func CountFrequenciesParallel(ctx context.Context, symbols []Symbol, workers, chunkSize int) (*FrequencyTable, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyInput
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if workers <= 1 || len(symbols) <= chunkSize {
		return CountFrequencies(symbols)
	}

	parts := make([]*FrequencyTable, (len(symbols)+chunkSize-1)/chunkSize)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		start := i * chunkSize
		end := min(start+chunkSize, len(symbols))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			part := &FrequencyTable{}
			part.add(symbols[start:end])
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count frequencies: %w", err)
	}

	ft := &FrequencyTable{}
	for _, part := range parts {
		ft.merge(part)
	}
	return ft, nil
}

func (ft *FrequencyTable) add(symbols []Symbol) {
	for _, s := range symbols {
		if ft.counts[s] == 0 {
			ft.order = append(ft.order, s)
		}
		ft.counts[s]++
	}
}

// merge folds other into ft. Symbols new to ft are appended in other's
// encounter order, so merging chunk tables left to right preserves the
// encounter order of the whole input.
func (ft *FrequencyTable) merge(other *FrequencyTable) {
	for _, s := range other.order {
		if ft.counts[s] == 0 {
			ft.order = append(ft.order, s)
		}
		ft.counts[s] += other.counts[s]
	}
}

// Len returns the number of distinct symbols.
func (ft *FrequencyTable) Len() int { return len(ft.order) }

// Count returns the number of occurrences of s.
func (ft *FrequencyTable) Count(s Symbol) uint64 { return ft.counts[s] }

// Entries returns the table in first-encounter order.
func (ft *FrequencyTable) Entries() []FrequencyEntry {
	out := make([]FrequencyEntry, len(ft.order))
	for i, s := range ft.order {
		out[i] = FrequencyEntry{Symbol: s, Count: ft.counts[s]}
	}
	return out
}

// Ranked returns the entries sorted by count, descending. Equal counts
// keep their encounter order.
func (ft *FrequencyTable) Ranked() RankedFrequencyList {
	list := RankedFrequencyList(ft.Entries())
	slices.SortStableFunc(list, func(a, b FrequencyEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return list
}

// RankedFrequencyList is a frequency list in descending count order.
// Its exact order determines the shape of the tree.
type RankedFrequencyList []FrequencyEntry

// Validate checks that the list can be turned into a tree: it must be
// non-empty, have unique symbols, positive counts and descending order.
func (l RankedFrequencyList) Validate() error {
	if len(l) == 0 {
		return ErrEmptyHeap
	}
	var seen [alphabetSize]bool
	var total uint64
	for i, e := range l {
		if e.Count == 0 {
			return fmt.Errorf("entry %d (%s): zero count", i, e.Symbol)
		}
		if seen[e.Symbol] {
			return fmt.Errorf("entry %d: duplicate symbol %s", i, e.Symbol)
		}
		seen[e.Symbol] = true
		if i > 0 && l[i-1].Count < e.Count {
			return fmt.Errorf("entry %d (%s): %w", i, e.Symbol, ErrUnsortedFrequencies)
		}
		var carry uint64
		if total, carry = bits.Add64(total, e.Count, 0); carry != 0 {
			return fmt.Errorf("entry %d (%s): %w", i, e.Symbol, ErrCountOverflow)
		}
	}
	return nil
}

// Total returns the sum of all counts, which is the length of the
// text the list was computed from. The sum of a valid list never
// overflows.
func (l RankedFrequencyList) Total() uint64 {
	var total uint64
	for _, e := range l {
		total += e.Count
	}
	return total
}

// Equal reports whether both lists hold the same entries in the same order.
func (l RankedFrequencyList) Equal(other RankedFrequencyList) bool {
	return slices.Equal(l, other)
}
