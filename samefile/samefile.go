// Package samefile answers one question: do two open file handles refer to
// the same file on disk? It is the identity core used by the walker for
// symlink loop detection.
//
// Identity is a (volume, file index) pair captured once, from the live open
// handle, at construction time. The pair is only meaningful while the handle
// stays open: file index numbers may be recycled after a close, and some
// filesystems do not guarantee unique indices at all (ReFS needs a 128-bit
// identifier that the legacy query cannot report). Callers must therefore
// keep both Handles open for as long as their comparison needs to stay
// valid. The failure mode of a stale or colliding key is a false "same
// file" answer, which in loop detection stops a descent early rather than
// looping forever. That tradeoff is accepted and documented here rather
// than fixed.
package samefile

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Key identifies a file on disk: the storage volume it lives on and its
// index within that volume. Two Keys are equal iff both fields match.
type Key struct {
	Volume uint64
	Index  uint64
}

type handleKind uint8

const (
	// kindOwned handles were opened by this package (or adopted from the
	// caller) and are closed by Close.
	kindOwned handleKind = iota
	// kindBorrowed handles wrap a process standard stream. Close releases
	// the wrapper's reference without closing the stream, which the process
	// does not own exclusively.
	kindBorrowed
)

// Handle is an identity-comparable open file. A Handle holds its underlying
// *os.File and the Key captured when it was constructed. Handles built from
// standard streams may have no key at all (a console with no redirection
// rejects the identity query); such a Handle compares equal only to itself.
type Handle struct {
	file   *os.File
	kind   handleKind
	key    Key
	hasKey bool
}

// FromPath opens path for reading and captures its identity. On Windows the
// open requests backup semantics so directories and reparse points can be
// opened too. Construction fails if either the open or the identity query
// fails.
func FromPath(path string) (*Handle, error) {
	f, err := openPath(path)
	if err != nil {
		return nil, err
	}
	h, err := FromFile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return h, nil
}

// FromFile adopts an already-open file and captures its identity. On
// success the returned Handle owns f and will close it. On failure f is
// left open and still belongs to the caller.
func FromFile(f *os.File) (*Handle, error) {
	key, err := extractKey(f)
	if err != nil {
		return nil, err
	}
	return &Handle{file: f, kind: kindOwned, key: key, hasKey: true}, nil
}

// Stdin returns a borrowed Handle over the process standard input.
// Construction never fails outright: if the identity query fails (typical
// for an unredirected console), the Handle simply carries no key.
func Stdin() (*Handle, error) { return fromStd(os.Stdin) }

// Stdout returns a borrowed Handle over the process standard output.
func Stdout() (*Handle, error) { return fromStd(os.Stdout) }

// Stderr returns a borrowed Handle over the process standard error.
func Stderr() (*Handle, error) { return fromStd(os.Stderr) }

func fromStd(f *os.File) (*Handle, error) {
	h := &Handle{file: f, kind: kindBorrowed}
	if key, err := extractKey(f); err == nil {
		h.key = key
		h.hasKey = true
	}
	// Query failure is expected for disconnected streams. The keyless
	// handle is never equal to any other handle, so it can only produce a
	// false negative downstream, never a false loop report.
	return h, nil
}

// Equal reports whether h and other refer to the same file. A Handle is
// always equal to itself, even without a key. Two distinct Handles where
// either key is absent are never equal.
func (h *Handle) Equal(other *Handle) bool {
	if h == other {
		return true
	}
	if other == nil || !h.hasKey || !other.hasKey {
		return false
	}
	return h.key == other.key
}

// Key returns the identity key and whether one is present.
func (h *Handle) Key() (Key, bool) {
	return h.key, h.hasKey
}

// Hash returns a hash of the identity key, consistent with Equal: equal
// handles hash equally. Keyless handles all hash to the same sentinel;
// they stay unequal by Equal, and a set keyed by Hash must fall back to
// Equal anyway.
func (h *Handle) Hash() uint64 {
	if !h.hasKey {
		return 0
	}
	return h.key.Hash()
}

// Hash returns a 64-bit hash of the key.
func (k Key) Hash() uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], k.Volume)
	binary.LittleEndian.PutUint64(b[8:], k.Index)
	return xxhash.Sum64(b[:])
}

// File exposes the underlying open file for I/O. The Handle still owns it;
// callers must not close it directly.
func (h *Handle) File() *os.File {
	return h.file
}

// Name returns the name of the underlying file, as reported by os.File.
func (h *Handle) Name() string {
	if h.file == nil {
		return ""
	}
	return h.file.Name()
}

// Close releases the Handle. Owned handles close their file; borrowed
// (standard stream) handles only drop the reference, leaving the stream
// open for the rest of the process. Close is idempotent.
func (h *Handle) Close() error {
	f := h.file
	h.file = nil
	if f == nil {
		return nil
	}
	switch h.kind {
	case kindBorrowed:
		return nil
	default:
		return f.Close()
	}
}

// IsSameFile reports whether the two paths refer to the same file. Both
// files are held open across the comparison, so the answer is as sound as
// the identity keys themselves.
func IsSameFile(path1, path2 string) (bool, error) {
	h1, err := FromPath(path1)
	if err != nil {
		return false, err
	}
	defer h1.Close()
	h2, err := FromPath(path2)
	if err != nil {
		return false, err
	}
	defer h2.Close()
	return h1.Equal(h2), nil
}
