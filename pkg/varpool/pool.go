// Package varpool simulates a memory pool whose capacity is carved on demand
// into chunks drawn from a fixed menu of allowed block sizes. Chunks are
// created at allocation time, identified by a generated token, and deleted
// outright on free.
package varpool

import (
	"go-mempool/pkg/customerrors"
	"go-mempool/util/helpers"
	"go-mempool/util/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Chunk is one allocated region. ID is a generated token unique across the
// pool's lifetime. Allocated is always true while the chunk is present; it
// is kept so snapshots carry the full record.
type Chunk struct {
	ID        string
	Size      uint64
	Owner     string
	Allocated bool
}

type Pool struct {
	blockSizes []uint64
	totalSize  uint64
	remaining  uint64
	chunks     []Chunk
}

// New creates a pool of totalSize bytes that may only be carved into chunks
// of the given sizes. The menu is kept verbatim: its order is the preference
// order of Alloc, and no dedup or sort is applied.
func New(totalSize uint64, blockSizes []uint64) (*Pool, error) {
	if totalSize == 0 {
		return nil, errors.Wrap(customerrors.ErrZeroTotalSize, "failed to create variable pool")
	}
	if len(blockSizes) == 0 {
		return nil, errors.Wrap(customerrors.ErrEmptySizeMenu, "failed to create variable pool")
	}
	for _, bs := range blockSizes {
		if bs == 0 {
			return nil, errors.Wrap(customerrors.ErrZeroMenuSize, "failed to create variable pool")
		}
	}

	menu := make([]uint64, len(blockSizes))
	copy(menu, blockSizes)
	return &Pool{
		blockSizes: menu,
		totalSize:  totalSize,
		remaining:  totalSize,
	}, nil
}

// AllocSingle carves size bytes into chunks of exactly blockSize for owner.
// blockSize must be on the menu. Bytes of size beyond the last whole block
// are dropped, not allocated. Returns the created chunks and whether the
// request was accepted.
func (p *Pool) AllocSingle(size uint64, owner string, blockSize uint64) ([]Chunk, bool) {
	if size > p.totalSize {
		return nil, false
	}
	if !lo.Contains(p.blockSizes, blockSize) {
		return nil, false
	}
	if p.remaining == 0 {
		return nil, false
	} else if p.remaining < size {
		return nil, false
	}

	count := size / blockSize
	results := make([]Chunk, 0, count)
	for i := uint64(0); i < count; i++ {
		c := Chunk{
			ID:        uuid.NewString(),
			Size:      blockSize,
			Owner:     owner,
			Allocated: true,
		}
		p.chunks = append(p.chunks, c)
		results = append(results, c)
		p.remaining -= blockSize
	}

	p.notify("alloc", owner)
	return results, true
}

// Alloc satisfies a request by greedy decomposition over the size menu in
// stored order. For each menu size, while some of the request is left: a
// request smaller than the last menu entry is granted exactly one chunk of
// that last size, otherwise as many whole chunks of the current size as fit.
// The result may cover less than size (or nothing) without error when the
// menu cannot match the request; no failures are reported.
func (p *Pool) Alloc(size uint64, owner string) []Chunk {
	last := int64(p.blockSizes[len(p.blockSizes)-1])

	// Signed so the smallest-size fallback can overshoot and end the loop.
	left := int64(size)
	results := []Chunk{}
	for _, bs := range p.blockSizes {
		if left <= 0 {
			break
		}

		var grant int64
		var chunkSize uint64
		if left < last {
			grant = last
			chunkSize = uint64(last)
		} else {
			grant = left / int64(bs) * int64(bs)
			chunkSize = bs
		}

		chunks, _ := p.AllocSingle(uint64(grant), owner, chunkSize)
		results = append(results, chunks...)
		left -= grant
	}

	return results
}

// Free releases the chunk with the given id, provided owner allocated it.
// A missing id and a mismatched owner fail identically.
func (p *Pool) Free(chunkID, owner string) bool {
	for i := range p.chunks {
		if p.chunks[i].ID == chunkID && p.chunks[i].Owner == owner {
			p.remaining += p.chunks[i].Size
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			p.notify("free", owner)
			return true
		}
	}
	return false
}

// FreeAll releases every chunk owned by owner, continuing past individual
// failures; false if any free failed.
func (p *Pool) FreeAll(owner string) bool {
	ids := lo.FilterMap(p.chunks, func(c Chunk, _ int) (string, bool) {
		return c.ID, c.Owner == owner
	})

	fails := 0
	for _, id := range ids {
		if !p.Free(id, owner) {
			fails++
		}
	}
	return fails == 0
}

func (p *Pool) Remaining() uint64 { return p.remaining }
func (p *Pool) TotalSize() uint64 { return p.totalSize }

// BlockSizes returns a copy of the size menu in stored order.
func (p *Pool) BlockSizes() []uint64 {
	out := make([]uint64, len(p.blockSizes))
	copy(out, p.blockSizes)
	return out
}

// FreePercent reports the free share of capacity, rounded to the nearest
// whole percent.
func (p *Pool) FreePercent() int {
	return int((p.remaining*100 + p.totalSize/2) / p.totalSize)
}

// Chunks returns a snapshot copy of all present chunks in allocation order.
func (p *Pool) Chunks() []Chunk {
	out := make([]Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

// OwnedBy returns snapshots of the chunks currently held by owner.
func (p *Pool) OwnedBy(owner string) []Chunk {
	return lo.Filter(p.chunks, func(c Chunk, _ int) bool {
		return c.Owner == owner
	})
}

// OwnerUsage reports how many chunks owner holds and their total bytes.
func (p *Pool) OwnerUsage(owner string) (chunks int, bytes uint64) {
	owned := p.OwnedBy(owner)
	sizes := lo.Map(owned, func(c Chunk, _ int) uint64 { return c.Size })
	return len(owned), helpers.Sum(sizes...)
}

// AllocatedBytes is the total size of all present chunks.
func (p *Pool) AllocatedBytes() uint64 {
	sizes := lo.Map(p.chunks, func(c Chunk, _ int) uint64 { return c.Size })
	return helpers.Sum(sizes...)
}

func (p *Pool) notify(op, owner string) {
	logger.L.WithFields(logrus.Fields{
		"op":        op,
		"owner":     owner,
		"remaining": p.remaining,
		"total":     p.totalSize,
		"chunks":    len(p.chunks),
	}).Debug("variable pool state changed")
}
