// Package report renders pool snapshots as plain-text tables. It only reads
// the pools' query surface; nothing here mutates pool state.
package report

import (
	"fmt"
	"strings"

	"go-mempool/pkg/fixedpool"
	"go-mempool/pkg/varpool"
	"go-mempool/util/humanize"
)

const (
	allocatedMark = "■"
	freeMark      = "▢"
)

func mark(allocated bool) string {
	if allocated {
		return allocatedMark
	}
	return freeMark
}

func ownerOrDash(owner string) string {
	if owner == "" {
		return "-"
	}
	return owner
}

// shortID truncates generated chunk ids for readability.
func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

// FixedTable renders the full block table of a fixed pool.
func FixedTable(p *fixedpool.Pool) string {
	var b strings.Builder
	b.WriteString("Fixed Block Memory Pool Table:\n")
	fmt.Fprintf(&b, "%-6s %-15s %-4s\n", "ID", "OWNER", "USE")
	b.WriteString(strings.Repeat("-", 26) + "\n")

	for _, blk := range p.Blocks() {
		fmt.Fprintf(&b, "%-6d %-15s %-4s\n", blk.ID, ownerOrDash(blk.Owner), mark(blk.Allocated))
	}
	b.WriteString("\n")
	return b.String()
}

// FixedSummary renders free/total block counts and the pool geometry.
func FixedSummary(p *fixedpool.Pool) string {
	var b strings.Builder
	b.WriteString("Fixed Block Size Memory Pool Summary:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "Free memory:     %d/%d blocks\n", p.Remaining(), p.TotalBlocks())
	fmt.Fprintf(&b, "Total Memory:    %d\n", p.TotalSize())
	fmt.Fprintf(&b, "BlockSize:       %d\n", p.BlockSize())
	b.WriteString("\n")
	return b.String()
}

// FixedOwnerReport lists the blocks held by owner with derived totals.
func FixedOwnerReport(p *fixedpool.Pool, owner string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total memory belonging to %q:\n", owner)
	b.WriteString(strings.Repeat("-", 30) + "\n")

	for _, blk := range p.OwnedBy(owner) {
		fmt.Fprintf(&b, "Block ID: %d\n", blk.ID)
	}

	blocks, bytes := p.OwnerUsage(owner)
	fmt.Fprintf(&b, "Total = %d blocks or %d\n\n", blocks, bytes)
	return b.String()
}

// VarTable renders all present chunks of a variable pool.
func VarTable(p *varpool.Pool) string {
	var b strings.Builder
	b.WriteString("Variable Block Memory Pool Table:\n")
	fmt.Fprintf(&b, "%-8s %-15s %-8s %-4s\n", "ID", "OWNER", "SIZE", "USE")
	b.WriteString(strings.Repeat("-", 36) + "\n")

	for _, c := range p.Chunks() {
		fmt.Fprintf(&b, "%-8s %-15s %-8s %-4s\n",
			shortID(c.ID), ownerOrDash(c.Owner), humanize.Size(c.Size), mark(c.Allocated))
	}
	b.WriteString("\n")
	return b.String()
}

// VarSummary renders free/total capacity and the free percentage.
func VarSummary(p *varpool.Pool) string {
	var b strings.Builder
	b.WriteString("Summary of Entire System:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "Free memory   %d\n", p.Remaining())
	fmt.Fprintf(&b, "Total Memory  %d\n", p.TotalSize())
	fmt.Fprintf(&b, "Free percent  %d%%\n", p.FreePercent())
	b.WriteString("\n")
	return b.String()
}

// VarOwnerReport lists the chunks held by owner with derived totals.
func VarOwnerReport(p *varpool.Pool, owner string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total memory belonging to %q:\n", owner)
	fmt.Fprintf(&b, "%-8s %-15s\n", "ID", "SIZE")
	b.WriteString(strings.Repeat("-", 30) + "\n")

	for _, c := range p.OwnedBy(owner) {
		fmt.Fprintf(&b, "%-8s %-15d\n", shortID(c.ID), c.Size)
	}

	chunks, bytes := p.OwnerUsage(owner)
	fmt.Fprintf(&b, "\nTotal = %d consisting of %d block(s)\n\n", bytes, chunks)
	return b.String()
}
