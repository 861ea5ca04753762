// Package rsync implements a file-level delta synchronization engine modeled
// on the rsync algorithm. It computes a signature of a base file, diffs a new
// file against that signature to produce a compact delta, and applies a delta
// plus the base file to reconstruct the new file.
package rsync
