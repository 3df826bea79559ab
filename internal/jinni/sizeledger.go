package jinni

import "container/heap"

// largestFilesCap is N in "top-N largest files" (spec.md §3).
const largestFilesCap = 10

// SizeLedger is a running aggregate of bytes emitted as content, plus
// a bounded top-N largest-files tracker kept as a min-heap so the
// smallest of the current top-N can be evicted in O(log N) whenever a
// larger file is seen. Owned exclusively by the Orchestrator for the
// duration of one ReadContext call and passed by pointer through the
// walker; never aliased.
type SizeLedger struct {
	TotalBytes int64
	heap       largestHeap
	seen       map[string]bool
}

// NewSizeLedger returns an empty ledger.
func NewSizeLedger() *SizeLedger {
	l := &SizeLedger{seen: make(map[string]bool)}
	heap.Init(&l.heap)
	return l
}

// AddContent accounts for size bytes of emitted file content toward
// the aggregate budget (content mode only; list-only mode never calls
// this, per spec.md §4.4).
func (l *SizeLedger) AddContent(size int64) {
	l.TotalBytes += size
}

// RecordSeen registers a file's raw size in the largest-files
// tracker, independent of mode: list-only runs still need this so the
// oversize diagnostic (which reports raw sizes) stays meaningful. A
// path already recorded is a no-op, so a caller that processes the
// same path twice (the walker's own dedup set already prevents this,
// but nothing enforces callers go through the walker) never double
// counts it in the top-N ranking.
func (l *SizeLedger) RecordSeen(relPath string, size int64) {
	if l.seen[relPath] {
		return
	}
	l.seen[relPath] = true

	entry := LargestFile{RelPath: relPath, Bytes: size}
	if l.heap.Len() < largestFilesCap {
		heap.Push(&l.heap, entry)
		return
	}
	if smallest := l.heap[0]; size > smallest.Bytes || (size == smallest.Bytes && relPath < smallest.RelPath) {
		heap.Pop(&l.heap)
		heap.Push(&l.heap, entry)
	}
}

// LargestFiles returns the tracked entries sorted descending by size,
// with ties broken by path (ascending), per spec.md §3/§6.
func (l *SizeLedger) LargestFiles() []LargestFile {
	out := make([]LargestFile, len(l.heap))
	copy(out, l.heap)
	sortLargestFiles(out)
	return out
}

func sortLargestFiles(files []LargestFile) {
	// Simple insertion sort: N is capped at 10, so this stays cheap
	// and avoids importing sort for a single small slice.
	for i := 1; i < len(files); i++ {
		for j := i; j > 0 && lessLargestFile(files[j], files[j-1]); j-- {
			files[j], files[j-1] = files[j-1], files[j]
		}
	}
}

// lessLargestFile orders by size descending, then path ascending.
func lessLargestFile(a, b LargestFile) bool {
	if a.Bytes != b.Bytes {
		return a.Bytes > b.Bytes
	}
	return a.RelPath < b.RelPath
}

// largestHeap is a min-heap on size (smallest on top), so the
// smallest of the current top-N is always the cheap eviction
// candidate.
type largestHeap []LargestFile

func (h largestHeap) Len() int { return len(h) }
func (h largestHeap) Less(i, j int) bool {
	if h[i].Bytes != h[j].Bytes {
		return h[i].Bytes < h[j].Bytes
	}
	return h[i].RelPath > h[j].RelPath
}
func (h largestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *largestHeap) Push(x interface{}) {
	*h = append(*h, x.(LargestFile))
}

func (h *largestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
