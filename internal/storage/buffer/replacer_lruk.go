package buffer

import (
	"log/slog"
	"sync"

	util "github.com/bietkhonhungvandi212/framekit/internal/utils"
)

// frameRecord tracks one frame's access history. A frame sits in exactly one
// recency list at a time: cold while accessCount < k, hot once it reaches k.
type frameRecord struct {
	accessCount int
	evictable   bool
	hot         bool
	prev        util.FrameID
	next        util.FrameID
}

// frameList is an intrusive doubly-linked list over the record slice, most
// recently accessed frame at the head.
type frameList struct {
	head util.FrameID
	tail util.FrameID
}

// LRUKReplacer approximates LRU-K eviction: frames seen fewer than k times
// have infinite backward k-distance and are evicted first, LRU among
// themselves; frames seen k or more times are evicted by recency of their
// most recent access. Eviction is destructive: a victim is fully untracked
// until the next RecordAccess.
type LRUKReplacer struct {
	mu       sync.Mutex
	capacity int
	k        int
	curSize  int // frames currently evictable
	records  []*frameRecord
	cold     frameList
	hot      frameList
	logger   *slog.Logger
}

// NewLRUKReplacer creates a replacer tracking frame ids in [0, capacity) with
// a history window of k accesses. Panics on a non-positive capacity or k.
func NewLRUKReplacer(capacity, k int) *LRUKReplacer {
	if capacity <= 0 {
		panic(util.ErrInvalidPoolSize)
	}
	if k <= 0 {
		panic(util.ErrInvalidHistoryK)
	}
	return &LRUKReplacer{
		capacity: capacity,
		k:        k,
		records:  make([]*frameRecord, capacity),
		cold:     frameList{head: util.InvalidFrameID, tail: util.InvalidFrameID},
		hot:      frameList{head: util.InvalidFrameID, tail: util.InvalidFrameID},
		logger:   slog.New(slog.DiscardHandler),
	}
}

// SetLogger routes diagnostics for rejected calls to l. Discarded by default.
func (r *LRUKReplacer) SetLogger(l *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l != nil {
		r.logger = l
	}
}

// RecordAccess registers one access to frame. An unseen frame starts tracked,
// evictable and cold; the k-th access promotes it to the hot list. Frame ids
// outside [0, capacity) are rejected with a logged no-op.
func (r *LRUKReplacer) RecordAccess(frame util.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frame) {
		r.logger.Debug("record access rejected", "frame", frame, "capacity", r.capacity)
		return
	}

	rec := r.records[frame]
	if rec == nil {
		rec = &frameRecord{
			evictable: true,
			prev:      util.InvalidFrameID,
			next:      util.InvalidFrameID,
		}
		r.records[frame] = rec
		r.curSize++
	} else if rec.hot {
		r.unlink(&r.hot, frame)
	} else {
		r.unlink(&r.cold, frame)
	}

	rec.accessCount++
	if rec.accessCount >= r.k {
		rec.hot = true
		r.pushHead(&r.hot, frame)
	} else {
		r.pushHead(&r.cold, frame)
	}
}

// SetEvictable marks frame evictable or pinned, adjusting the evictable
// count on a transition. No-op for untracked or out-of-range frames.
func (r *LRUKReplacer) SetEvictable(frame util.FrameID, evictable bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frame) {
		r.logger.Debug("set evictable rejected", "frame", frame, "capacity", r.capacity)
		return
	}
	rec := r.records[frame]
	if rec == nil {
		r.logger.Debug("set evictable on untracked frame", "frame", frame)
		return
	}

	if rec.evictable && !evictable {
		r.curSize--
	} else if !rec.evictable && evictable {
		r.curSize++
	}
	rec.evictable = evictable
}

// Evict selects the evictable frame with the largest backward k-distance:
// the oldest evictable cold frame if any, otherwise the least recently
// accessed evictable hot frame. The victim is fully untracked.
func (r *LRUKReplacer) Evict() (util.FrameID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.curSize == 0 {
		return util.InvalidFrameID, false
	}
	if frame, ok := r.evictFrom(&r.cold); ok {
		return frame, true
	}
	return r.evictFrom(&r.hot)
}

// Remove drops tracking state for frame. No-op if the frame is untracked,
// out of range, or pinned.
func (r *LRUKReplacer) Remove(frame util.FrameID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frame) {
		r.logger.Debug("remove rejected", "frame", frame, "capacity", r.capacity)
		return
	}
	rec := r.records[frame]
	if rec == nil {
		r.logger.Debug("remove on untracked frame", "frame", frame)
		return
	}
	if !rec.evictable {
		r.logger.Debug("remove on pinned frame", "frame", frame)
		return
	}

	if rec.hot {
		r.unlink(&r.hot, frame)
	} else {
		r.unlink(&r.cold, frame)
	}
	r.records[frame] = nil
	r.curSize--
}

// Size returns the number of evictable frames.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.curSize
}

func (r *LRUKReplacer) inRange(frame util.FrameID) bool {
	return frame >= 0 && int(frame) < r.capacity
}

// evictFrom scans l from the tail (least recently accessed) and untracks the
// first evictable frame found.
func (r *LRUKReplacer) evictFrom(l *frameList) (util.FrameID, bool) {
	for frame := l.tail; frame != util.InvalidFrameID; {
		rec := r.records[frame]
		if rec == nil {
			panic(util.ErrReplacerCorrupted)
		}
		if rec.evictable {
			r.unlink(l, frame)
			r.records[frame] = nil
			r.curSize--
			return frame, true
		}
		frame = rec.prev
	}
	return util.InvalidFrameID, false
}

func (r *LRUKReplacer) pushHead(l *frameList, frame util.FrameID) {
	rec := r.records[frame]
	rec.prev = util.InvalidFrameID
	rec.next = l.head
	if l.head != util.InvalidFrameID {
		r.records[l.head].prev = frame
	}
	l.head = frame
	if l.tail == util.InvalidFrameID {
		l.tail = frame
	}
}

func (r *LRUKReplacer) unlink(l *frameList, frame util.FrameID) {
	rec := r.records[frame]
	if rec.prev != util.InvalidFrameID {
		r.records[rec.prev].next = rec.next
	} else {
		l.head = rec.next
	}
	if rec.next != util.InvalidFrameID {
		r.records[rec.next].prev = rec.prev
	} else {
		l.tail = rec.prev
	}
	rec.prev = util.InvalidFrameID
	rec.next = util.InvalidFrameID
}
