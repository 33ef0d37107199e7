// Package fixedpool simulates a memory pool carved into equal-size blocks.
// Allocation claims whole blocks first-fit by ascending index; blocks are
// owned by the caller that claimed them and only that caller may free them.
package fixedpool

import (
	"go-mempool/pkg/customerrors"
	"go-mempool/util/logger"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Block is one fixed-size unit of the pool. ID equals the block's position
// in the table and never changes.
type Block struct {
	ID        int
	Allocated bool
	Owner     string
}

type Pool struct {
	blockSize   uint64
	totalSize   uint64
	totalBlocks int
	remaining   int
	table       []Block
}

// New creates a pool of totalSize bytes split into blocks of blockSize bytes.
// Trailing bytes that do not fill a whole block are unaddressable.
func New(totalSize, blockSize uint64) (*Pool, error) {
	if blockSize == 0 {
		return nil, errors.Wrap(customerrors.ErrZeroBlockSize, "failed to create fixed pool")
	}
	if totalSize == 0 {
		return nil, errors.Wrap(customerrors.ErrZeroTotalSize, "failed to create fixed pool")
	}
	if totalSize < blockSize {
		return nil, errors.Wrap(customerrors.ErrPoolTooSmall, "failed to create fixed pool")
	}

	n := int(totalSize / blockSize)
	p := &Pool{
		blockSize:   blockSize,
		totalSize:   totalSize,
		totalBlocks: n,
		remaining:   n,
		table:       make([]Block, n),
	}
	for i := range p.table {
		p.table[i].ID = i
	}
	return p, nil
}

// Alloc claims size/blockSize whole blocks for owner, first-fit by ascending
// index. A request that rounds down to zero blocks succeeds without claiming
// anything, as long as the pool is not already full.
func (p *Pool) Alloc(size uint64, owner string) bool {
	if size > p.totalSize {
		return false
	}

	num := int(size / p.blockSize)
	if p.remaining == 0 {
		return false
	} else if p.remaining < num {
		return false
	}

	claimed := 0
	for i := range p.table {
		if claimed == num {
			break
		}
		if !p.table[i].Allocated {
			p.table[i].Allocated = true
			p.table[i].Owner = owner
			p.remaining--
			claimed++
		}
	}

	p.notify("alloc", owner)
	return true
}

// Free releases the block at blockID. It fails when the id is out of range,
// the block is not allocated, or owner did not allocate it.
func (p *Pool) Free(blockID int, owner string) bool {
	if blockID < 0 || blockID >= p.totalBlocks {
		return false
	}
	if !p.table[blockID].Allocated {
		return false
	}
	if p.table[blockID].Owner != owner {
		return false
	}

	p.table[blockID].Allocated = false
	p.table[blockID].Owner = ""
	p.remaining++

	p.notify("free", owner)
	return true
}

// FreeAll releases every block owned by owner. It keeps going past
// individual failures and reports false if any free failed.
func (p *Pool) FreeAll(owner string) bool {
	fails := 0
	for i := range p.table {
		if p.table[i].Owner == owner && p.table[i].Allocated {
			if !p.Free(p.table[i].ID, owner) {
				fails++
			}
		}
	}
	return fails == 0
}

func (p *Pool) Remaining() int    { return p.remaining }
func (p *Pool) TotalBlocks() int  { return p.totalBlocks }
func (p *Pool) BlockSize() uint64 { return p.blockSize }
func (p *Pool) TotalSize() uint64 { return p.totalSize }

// Blocks returns a snapshot copy of the block table.
func (p *Pool) Blocks() []Block {
	out := make([]Block, len(p.table))
	copy(out, p.table)
	return out
}

// OwnedBy returns snapshots of the blocks currently held by owner.
func (p *Pool) OwnedBy(owner string) []Block {
	return lo.Filter(p.table, func(b Block, _ int) bool {
		return b.Allocated && b.Owner == owner
	})
}

// OwnerUsage reports how many blocks owner holds and how many bytes those
// blocks cover.
func (p *Pool) OwnerUsage(owner string) (blocks int, bytes uint64) {
	blocks = len(p.OwnedBy(owner))
	return blocks, uint64(blocks) * p.blockSize
}

func (p *Pool) notify(op, owner string) {
	logger.L.WithFields(logrus.Fields{
		"op":        op,
		"owner":     owner,
		"remaining": p.remaining,
		"total":     p.totalBlocks,
	}).Debug("fixed pool state changed")
}
