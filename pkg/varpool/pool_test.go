package varpool

import (
	"testing"

	"go-mempool/pkg/customerrors"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	gb2  = uint64(2147483648)
	mb2  = uint64(2097152)
	kb4  = uint64(4096)
	gb16 = uint64(17179869184)
	gb10 = uint64(10737418240)
)

func newTestPool(t *testing.T) *Pool {
	t.Helper()
	p, err := New(gb16, []uint64{gb2, mb2, kb4})
	require.NoError(t, err)
	return p
}

func requireInvariant(t *testing.T, p *Pool) {
	t.Helper()
	require.Equal(t, p.TotalSize(), p.AllocatedBytes()+p.Remaining())
}

func TestNewValidation(t *testing.T) {
	_, err := New(0, []uint64{kb4})
	require.ErrorIs(t, err, customerrors.ErrZeroTotalSize)

	_, err = New(gb16, nil)
	require.ErrorIs(t, err, customerrors.ErrEmptySizeMenu)

	_, err = New(gb16, []uint64{kb4, 0})
	require.ErrorIs(t, err, customerrors.ErrZeroMenuSize)
}

func TestMenuStoredVerbatim(t *testing.T) {
	// Unsorted and with duplicates: stored exactly as given.
	menu := []uint64{kb4, gb2, kb4}
	p, err := New(gb16, menu)
	require.NoError(t, err)
	require.Equal(t, menu, p.BlockSizes())

	// The pool holds its own copy of the menu.
	menu[0] = 1
	require.Equal(t, kb4, p.BlockSizes()[0])
}

func TestAllocSingle(t *testing.T) {
	p := newTestPool(t)

	chunks, ok := p.AllocSingle(3*mb2, "A", mb2)
	require.True(t, ok)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		require.Equal(t, mb2, c.Size)
		require.Equal(t, "A", c.Owner)
		require.True(t, c.Allocated)
		require.NotEmpty(t, c.ID)
	}
	require.Equal(t, gb16-3*mb2, p.Remaining())
	requireInvariant(t, p)

	// Chunk ids are unique across grants.
	more, ok := p.AllocSingle(2*mb2, "A", mb2)
	require.True(t, ok)
	all := append(chunks, more...)
	ids := lo.Map(all, func(c Chunk, _ int) string { return c.ID })
	require.Len(t, lo.Uniq(ids), len(all))
}

func TestAllocSingleRejectsSizeOffMenu(t *testing.T) {
	p := newTestPool(t)

	chunks, ok := p.AllocSingle(8192, "A", 8192)
	require.False(t, ok)
	require.Nil(t, chunks)
	require.Empty(t, p.Chunks())
	require.Equal(t, gb16, p.Remaining())
}

func TestAllocSingleRejectsOversizedRequest(t *testing.T) {
	p := newTestPool(t)

	_, ok := p.AllocSingle(gb16+1, "A", gb2)
	require.False(t, ok)

	// Larger than what is left, even though smaller than the pool.
	_, ok = p.AllocSingle(gb16, "A", gb2)
	require.True(t, ok)
	_, ok = p.AllocSingle(kb4, "B", kb4)
	require.False(t, ok)
	requireInvariant(t, p)
}

func TestAllocSingleDropsRemainder(t *testing.T) {
	p := newTestPool(t)

	// 5 MB at 2 MB per chunk: two chunks, the odd megabyte is dropped.
	chunks, ok := p.AllocSingle(5*1024*1024, "A", mb2)
	require.True(t, ok)
	require.Len(t, chunks, 2)
	require.Equal(t, gb16-2*mb2, p.Remaining())
	requireInvariant(t, p)
}

func TestAllocGreedyDecomposition(t *testing.T) {
	p := newTestPool(t)

	// 10 GB divides the first menu entry exactly: five 2 GB chunks.
	chunks := p.Alloc(gb10, "A")
	require.Len(t, chunks, 5)
	for _, c := range chunks {
		require.Equal(t, gb2, c.Size)
	}
	require.Equal(t, gb16-gb10, p.Remaining())
	requireInvariant(t, p)
}

func TestAllocMixedSizes(t *testing.T) {
	p := newTestPool(t)

	// 2 GB + 2 MB + 4 KB: one chunk from each menu entry.
	chunks := p.Alloc(gb2+mb2+kb4, "A")
	sizes := lo.Map(chunks, func(c Chunk, _ int) uint64 { return c.Size })
	require.Equal(t, []uint64{gb2, mb2, kb4}, sizes)
	require.Equal(t, gb16-gb2-mb2-kb4, p.Remaining())
	requireInvariant(t, p)
}

func TestAllocSmallestFallback(t *testing.T) {
	p := newTestPool(t)

	// Smaller than every menu entry: granted one chunk of the last
	// menu size.
	chunks := p.Alloc(100, "A")
	require.Len(t, chunks, 1)
	require.Equal(t, kb4, chunks[0].Size)
	require.Equal(t, gb16-kb4, p.Remaining())
	requireInvariant(t, p)
}

func TestAllocOrderDependence(t *testing.T) {
	// The menu is iterated in stored order, not sorted. With the small
	// size first, the whole request is satisfied by 4 KB chunks on the
	// first menu entry.
	p, err := New(1048576, []uint64{kb4, 65536})
	require.NoError(t, err)

	chunks := p.Alloc(65536+kb4, "A")
	require.Len(t, chunks, 17)
	for _, c := range chunks {
		require.Equal(t, kb4, c.Size)
	}
	requireInvariant(t, p)
}

func TestAllocUnmatchableReturnsPartial(t *testing.T) {
	// Nothing can be granted once capacity is too low for the request.
	p, err := New(8192, []uint64{kb4})
	require.NoError(t, err)

	_, ok := p.AllocSingle(8192, "A", kb4)
	require.True(t, ok)

	chunks := p.Alloc(kb4, "B")
	require.Empty(t, chunks)
	require.Equal(t, uint64(0), p.Remaining())
	requireInvariant(t, p)
}

func TestFreeByIDAndOwner(t *testing.T) {
	p := newTestPool(t)
	chunks := p.Alloc(gb10, "A")
	require.Len(t, chunks, 5)

	require.True(t, p.Free(chunks[0].ID, "A"))
	require.Equal(t, gb16-gb10+gb2, p.Remaining())
	require.Len(t, p.Chunks(), 4)
	requireInvariant(t, p)

	// Freed chunks are deleted, not marked: the id is gone for good.
	require.False(t, p.Free(chunks[0].ID, "A"))
}

func TestFreeWrongOwnerLeavesStateUnchanged(t *testing.T) {
	p := newTestPool(t)
	chunks := p.Alloc(gb2, "A")
	require.Len(t, chunks, 1)

	before := p.Chunks()
	require.False(t, p.Free(chunks[0].ID, "wrong-owner"))
	require.Empty(t, cmp.Diff(before, p.Chunks()))
	require.Equal(t, gb16-gb2, p.Remaining())
}

func TestFreeUnknownID(t *testing.T) {
	p := newTestPool(t)
	require.False(t, p.Free("no-such-chunk", "A"))
	require.Equal(t, gb16, p.Remaining())
}

func TestFreeRoundTrip(t *testing.T) {
	p := newTestPool(t)
	chunks := p.Alloc(gb2+mb2, "A")

	for _, c := range chunks {
		require.True(t, p.Free(c.ID, "A"))
	}
	require.Equal(t, gb16, p.Remaining())
	require.Empty(t, p.Chunks())
	requireInvariant(t, p)
}

func TestFreeAll(t *testing.T) {
	p := newTestPool(t)
	p.Alloc(gb10, "A")
	p.Alloc(mb2, "B")

	require.True(t, p.FreeAll("A"))
	require.Empty(t, p.OwnedBy("A"))
	require.Len(t, p.OwnedBy("B"), 1)
	require.Equal(t, gb16-mb2, p.Remaining())

	require.True(t, p.FreeAll("nobody"))
	requireInvariant(t, p)
}

func TestOwnerUsage(t *testing.T) {
	p := newTestPool(t)
	p.Alloc(gb10, "A")
	p.Alloc(mb2, "B")

	chunks, bytes := p.OwnerUsage("A")
	require.Equal(t, 5, chunks)
	require.Equal(t, gb10, bytes)

	chunks, bytes = p.OwnerUsage("nobody")
	require.Zero(t, chunks)
	require.Zero(t, bytes)
}

func TestFreePercent(t *testing.T) {
	p := newTestPool(t)
	require.Equal(t, 100, p.FreePercent())

	p.Alloc(gb10, "A")
	// 6 GB of 16 GB left: 37.5%, rounded to 38.
	require.Equal(t, 38, p.FreePercent())

	_, ok := p.AllocSingle(p.Remaining(), "A", gb2)
	require.True(t, ok)
	require.Equal(t, 0, p.FreePercent())
}

func TestQueriesIdempotent(t *testing.T) {
	p := newTestPool(t)
	p.Alloc(gb10, "A")

	first := p.Chunks()
	second := p.Chunks()
	require.Empty(t, cmp.Diff(first, second))

	c1, b1 := p.OwnerUsage("A")
	c2, b2 := p.OwnerUsage("A")
	require.Equal(t, c1, c2)
	require.Equal(t, b1, b2)
}
