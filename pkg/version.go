package yardlist

// Version and Build are set by the build's ldflags.
var (
	Version = "v0.1.0"
	Build   = "n/a"
)
