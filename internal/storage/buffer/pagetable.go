package buffer

import (
	"sync"

	"github.com/bietkhonhungvandi212/framekit/internal/storage/index"
	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// PageTable maps resident page ids to the frames caching them. It is the thin
// page-table layer a buffer pool manager keeps on top of the extendible hash
// index. The mutex only makes Bind/Unbind bookkeeping atomic; the index
// serializes its own state.
type PageTable struct {
	mu      sync.Mutex
	entries *index.ExtendibleHashTable[util.PageID, util.FrameID]
	count   int
}

// NewPageTable creates an empty page table with the given index bucket size.
func NewPageTable(bucketSize int) *PageTable {
	return &PageTable{
		entries: index.New[util.PageID, util.FrameID](bucketSize),
	}
}

// Lookup returns the frame caching pid, if resident.
func (pt *PageTable) Lookup(pid util.PageID) (util.FrameID, bool) {
	frame, ok := pt.entries.Find(pid)
	if !ok {
		return util.InvalidFrameID, false
	}
	return frame, true
}

// Bind records that pid is cached in frame, replacing any previous binding.
func (pt *PageTable) Bind(pid util.PageID, frame util.FrameID) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if _, ok := pt.entries.Find(pid); !ok {
		pt.count++
	}
	pt.entries.Insert(pid, frame)
}

// Unbind drops pid's binding and reports whether one existed.
func (pt *PageTable) Unbind(pid util.PageID) bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.entries.Remove(pid) {
		return false
	}
	pt.count--
	return true
}

// Len returns the number of resident pages.
func (pt *PageTable) Len() int {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return pt.count
}
