package site

import "errors"

// Sentinel errors for discovery and index construction.
var (
	// ErrContentRootNotFound indicates the configured content directory does not exist.
	ErrContentRootNotFound = errors.New("content directory not found")

	// ErrWalkFailed indicates traversal of the content directory failed.
	ErrWalkFailed = errors.New("content directory walk failed")

	// ErrDuplicateKey indicates two content files resolve to the same post key.
	ErrDuplicateKey = errors.New("duplicate post key")
)
