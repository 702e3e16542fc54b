package util

import "errors"

var (
	ErrInvalidPoolSize   = errors.New("invalid pool size")
	ErrInvalidHistoryK   = errors.New("history window k must be positive")
	ErrInvalidBucketSize = errors.New("invalid bucket size")
	ErrReplacerCorrupted = errors.New("replacer recency list out of sync with frame records")
)
