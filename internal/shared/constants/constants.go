package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultProbeTimeout bounds every outbound request.
	DefaultProbeTimeout = 5 * time.Second
	// MaxBodyBytes caps how much of a response body is kept in memory.
	MaxBodyBytes = 1 << 20
	// DetectionConfidenceThreshold is the minimum fingerprint confidence that
	// produces a "Detected CMS" finding.
	DetectionConfidenceThreshold = 80
)
