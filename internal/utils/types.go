package util

// PageID represents a unique page identifier
type PageID uint64

// FrameID represents an index into the buffer pool's frame array
type FrameID int

// InvalidFrameID marks the absence of a frame
const InvalidFrameID FrameID = -1
