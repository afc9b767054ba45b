package huffman

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTreeMergesLowestFirst(t *testing.T) {
	root, err := BuildTree(RankedFrequencyList{{'a', 8}, {'b', 7}, {'c', 6}})
	require.NoError(t, err)

	require.Equal(t, InternalNode, root.Kind)
	require.Equal(t, uint64(21), root.Weight)
	require.True(t, root.Left.IsLeaf())
	require.Equal(t, Symbol('a'), root.Left.Symbol)

	merged := root.Right
	require.Equal(t, InternalNode, merged.Kind)
	require.Equal(t, uint64(13), merged.Weight)
	require.Equal(t, Symbol('c'), merged.Left.Symbol)
	require.Equal(t, Symbol('b'), merged.Right.Symbol)

	require.Equal(t, 2, root.Depth())
	require.Equal(t, 3, root.Leaves())
}

func TestBuildTreeSingleEntry(t *testing.T) {
	root, err := BuildTree(RankedFrequencyList{{'a', 4}})
	require.NoError(t, err)
	require.True(t, root.IsLeaf())
	require.Equal(t, Symbol('a'), root.Symbol)
	require.Equal(t, uint64(4), root.Weight)
	require.Nil(t, root.Left)
	require.Nil(t, root.Right)
	require.Equal(t, 0, root.Depth())
}

func TestBuildTreeErrors(t *testing.T) {
	_, err := BuildTree(nil)
	require.ErrorIs(t, err, ErrEmptyHeap)

	_, err = BuildTree(RankedFrequencyList{{'a', 1}, {'b', 5}})
	require.ErrorIs(t, err, ErrUnsortedFrequencies)
}

// The tie-break must match a descending list that is stably re-sorted
// after every merge, with the merged node appended last.
func TestBuildTreeTieBreak(t *testing.T) {
	testCases := []struct {
		name string
		list RankedFrequencyList
		want CodeTable
	}{
		{
			name: "equal leaves",
			list: RankedFrequencyList{{'a', 2}, {'b', 2}},
			want: CodeTable{'b': "0", 'a': "1"},
		},
		{
			name: "merged node ties a leaf",
			list: RankedFrequencyList{{'x', 2}, {'y', 1}, {'z', 1}},
			want: CodeTable{'z': "00", 'y': "01", 'x': "1"},
		},
		{
			name: "all equal",
			list: RankedFrequencyList{{'a', 1}, {'b', 1}, {'c', 1}, {'d', 1}},
			// d+c -> n1, b+a -> n2, then n2 (appended last) is popped first
			want: CodeTable{'b': "00", 'a': "01", 'd': "10", 'c': "11"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := BuildTree(tc.list)
			require.NoError(t, err)
			cb, err := DeriveCodes(root)
			require.NoError(t, err)
			require.Equal(t, tc.want, cb.Codes)
		})
	}
}

func TestBuildTreeIsDeterministic(t *testing.T) {
	p := newSimplePRNG(7)
	ft, err := CountFrequencies(mustSymbols(t, p.skewedText(5000, "abcdefghijklmnop")))
	require.NoError(t, err)
	list := ft.Ranked()

	first, err := NewCodebook(list)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := NewCodebook(list)
		require.NoError(t, err)
		require.Equal(t, first.Codes, again.Codes)
	}
}

func TestLowerItem(t *testing.T) {
	light := treeItem{node: NewLeaf('a', 1), seq: 0}
	heavy := treeItem{node: NewLeaf('b', 2), seq: 5}
	require.True(t, lowerItem(light, heavy))
	require.False(t, lowerItem(heavy, light))

	// equal weight: the entry later in the descending list goes first
	early := treeItem{node: NewLeaf('c', 3), seq: 1}
	late := treeItem{node: NewLeaf('d', 3), seq: 4}
	require.True(t, lowerItem(late, early))
	require.False(t, lowerItem(early, late))
}
