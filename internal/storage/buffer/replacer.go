package buffer

import util "github.com/bietkhonhungvandi212/framekit/internal/utils"

// Replacer defines the contract for frame replacement policies.
type Replacer interface {
	// RecordAccess registers one access to frame.
	RecordAccess(frame util.FrameID)
	// SetEvictable marks a tracked frame as evictable or pinned.
	SetEvictable(frame util.FrameID, evictable bool)
	// Evict selects a victim frame and drops all tracking state for it.
	// Returns false if no frame is evictable.
	Evict() (util.FrameID, bool)
	// Remove forcibly drops tracking state for a specific evictable frame.
	Remove(frame util.FrameID)
	// Size returns the number of evictable frames.
	Size() int
}
