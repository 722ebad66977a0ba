// Package walker walks a directory tree and reports symlink loops and
// hardlink groups, using open-handle identity from package samefile.
//
// The walk is a sequential depth-first traversal. Every directory on the
// current descent path keeps its samefile.Handle open; a candidate
// directory whose identity equals any ancestor's is reported as a cycle
// and never descended into. Because ancestor handles stay open for exactly
// the lifetime of their stack entries, those comparisons are as sound as
// the identity keys themselves.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/sadopc/linkscan/internal/model"
	"github.com/sadopc/linkscan/samefile"
)

// Options configures the walker behavior.
type Options struct {
	// FollowSymlinks descends into symlinked directories. Loops are
	// detected and reported either way; following only decides whether
	// non-looping link targets get walked too.
	FollowSymlinks bool
	// ShowHidden includes files/directories starting with a dot.
	ShowHidden bool
	// ExcludePatterns is a list of doublestar globs matched against the
	// slash-separated path relative to the scan root.
	ExcludePatterns []string
	// MaxDepth limits how many directory levels below the root are
	// entered (0 = unlimited).
	MaxDepth int
	// DetectHardlinks groups regular files that share one identity key.
	DetectHardlinks bool
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		FollowSymlinks:  true,
		ShowHidden:      true,
		DetectHardlinks: true,
	}
}

// Walker scans directory trees for symlink loops and hardlink groups.
type Walker struct {
	log zerolog.Logger
}

// New creates a walker that logs through the given logger.
func New(log zerolog.Logger) *Walker {
	return &Walker{log: log}
}

// ancestor is one open directory on the current descent path.
type ancestor struct {
	path   string
	handle *samefile.Handle
}

type walkState struct {
	ctx  context.Context
	opts Options
	log  zerolog.Logger

	stack []ancestor
	// visitedDirs remembers every directory already walked, keyed by
	// identity, so a symlink into an already-covered subtree is skipped
	// instead of walked twice. Keys here outlive their handles; a recycled
	// index could at worst skip a subtree, never fabricate a cycle.
	visitedDirs map[samefile.Key]string
	groups      map[samefile.Key]*model.LinkGroup
	cycles      []model.Cycle

	// Counters are atomics only because the progress ticker goroutine
	// reads them while the walk runs; the walk itself is sequential.
	filesScanned     atomic.Int64
	dirsScanned      atomic.Int64
	symlinksSeen     atomic.Int64
	symlinksFollowed atomic.Int64
	bytesSeen        atomic.Int64
	cyclesFound      atomic.Int64
	errCount         atomic.Int64
}

// Walk scans the tree rooted at path and returns a report of every symlink
// loop and hardlink group found. Progress updates are sent on the progress
// channel if non-nil. On cancellation the partial report is returned along
// with the context error.
func (w *Walker) Walk(ctx context.Context, path string, opts Options, progress chan<- Progress) (*model.Report, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "walk", Path: absPath, Err: os.ErrInvalid}
	}

	for _, p := range opts.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, &os.PathError{Op: "walk", Path: p, Err: os.ErrInvalid}
		}
	}

	rootHandle, err := samefile.FromPath(absPath)
	if err != nil {
		return nil, err
	}
	defer rootHandle.Close()

	s := &walkState{
		ctx:         ctx,
		opts:        opts,
		log:         w.log,
		stack:       []ancestor{{path: absPath, handle: rootHandle}},
		visitedDirs: make(map[samefile.Key]string),
		groups:      make(map[samefile.Key]*model.LinkGroup),
	}
	if key, ok := rootHandle.Key(); ok {
		s.visitedDirs[key] = absPath
	}

	startTime := time.Now()

	// Progress reporter goroutine
	var progressWg sync.WaitGroup
	progressDone := make(chan struct{})
	if progress != nil {
		progressWg.Add(1)
		go func() {
			defer progressWg.Done()
			ticker := time.NewTicker(50 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					select {
					case progress <- s.snapshot(startTime, false):
					default:
						// Drop if channel full
					}
				case <-progressDone:
					return
				}
			}
		}()
	}

	s.recurse(absPath, "", 0)

	if progress != nil {
		close(progressDone)
		progressWg.Wait()
		select {
		case progress <- s.snapshot(startTime, true):
		default:
		}
	}

	report := &model.Report{
		Root:      absPath,
		Timestamp: startTime,
		Cycles:    s.cycles,
		Stats: model.Stats{
			FilesScanned:     s.filesScanned.Load(),
			DirsScanned:      s.dirsScanned.Load(),
			SymlinksSeen:     s.symlinksSeen.Load(),
			SymlinksFollowed: s.symlinksFollowed.Load(),
			BytesSeen:        s.bytesSeen.Load(),
			Errors:           s.errCount.Load(),
			Duration:         time.Since(startTime),
		},
	}
	for _, g := range s.groups {
		if len(g.Paths) > 1 || g.Nlink > uint64(len(g.Paths)) {
			report.Groups = append(report.Groups, *g)
		}
	}
	model.SortCycles(report.Cycles, model.DefaultSort())
	model.SortGroups(report.Groups, model.DefaultSort())
	model.SortGroupPaths(report.Groups)

	return report, ctx.Err()
}

func (s *walkState) snapshot(startTime time.Time, done bool) Progress {
	return Progress{
		FilesScanned: s.filesScanned.Load(),
		DirsScanned:  s.dirsScanned.Load(),
		SymlinksSeen: s.symlinksSeen.Load(),
		CyclesFound:  s.cyclesFound.Load(),
		BytesSeen:    s.bytesSeen.Load(),
		Errors:       s.errCount.Load(),
		Done:         done,
		StartTime:    startTime,
		Duration:     time.Since(startTime),
	}
}

// recurse walks one directory. The directory's own handle is already on
// the stack when recurse is entered.
func (s *walkState) recurse(dirPath, rel string, depth int) {
	select {
	case <-s.ctx.Done():
		return
	default:
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		s.errCount.Add(1)
		s.log.Debug().Err(err).Str("dir", dirPath).Msg("cannot read directory")
		return
	}

	s.dirsScanned.Add(1)

	for _, entry := range entries {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		name := entry.Name()

		if !s.opts.ShowHidden && strings.HasPrefix(name, ".") {
			continue
		}

		relPath := name
		if rel != "" {
			relPath = rel + "/" + name
		}
		if s.excluded(relPath) {
			continue
		}

		fullPath := filepath.Join(dirPath, name)

		switch {
		case entry.IsDir():
			s.enterDir(fullPath, relPath, depth, false)

		case entry.Type()&os.ModeSymlink != 0:
			s.handleSymlink(fullPath, relPath, depth)

		default:
			info, err := entry.Info()
			if err != nil {
				s.errCount.Add(1)
				continue
			}
			s.handleFile(fullPath, info)
		}
	}
}

// enterDir opens a handle on a directory, checks it against every open
// ancestor, and descends unless that would loop or revisit a subtree.
// viaLink marks directories reached through a symlink.
func (s *walkState) enterDir(fullPath, relPath string, depth int, viaLink bool) {
	h, err := samefile.FromPath(fullPath)
	if err != nil {
		s.errCount.Add(1)
		s.log.Debug().Err(err).Str("dir", fullPath).Msg("cannot open directory")
		return
	}

	if anc := s.findAncestor(h); anc != nil {
		key, _ := h.Key()
		s.cycles = append(s.cycles, model.Cycle{
			Link:     fullPath,
			Ancestor: anc.path,
			Depth:    depth + 1,
			Key:      key,
		})
		s.cyclesFound.Add(1)
		s.log.Info().
			Str("link", fullPath).
			Str("ancestor", anc.path).
			Msg("symlink loop detected")
		h.Close()
		return
	}

	if viaLink && !s.opts.FollowSymlinks {
		h.Close()
		return
	}
	if viaLink {
		s.symlinksFollowed.Add(1)
	}

	if s.opts.MaxDepth > 0 && depth+1 > s.opts.MaxDepth {
		h.Close()
		return
	}

	if key, ok := h.Key(); ok {
		if first, seen := s.visitedDirs[key]; seen {
			s.log.Debug().
				Str("dir", fullPath).
				Str("first", first).
				Msg("subtree already walked")
			h.Close()
			return
		}
		s.visitedDirs[key] = fullPath
	}

	s.stack = append(s.stack, ancestor{path: fullPath, handle: h})
	s.recurse(fullPath, relPath, depth+1)
	s.stack = s.stack[:len(s.stack)-1]
	h.Close()
}

// handleSymlink resolves a symlink entry. Links to directories are always
// probed against the ancestor stack so loops are reported even when the
// walk is not following links.
func (s *walkState) handleSymlink(fullPath, relPath string, depth int) {
	s.symlinksSeen.Add(1)

	info, err := os.Stat(fullPath)
	if err != nil {
		// Dangling link. Not an error worth surfacing per entry.
		s.errCount.Add(1)
		s.log.Debug().Err(err).Str("link", fullPath).Msg("cannot resolve symlink")
		return
	}

	if info.IsDir() {
		s.enterDir(fullPath, relPath, depth, true)
		return
	}

	if s.opts.FollowSymlinks {
		s.handleFile(fullPath, info)
	}
}

// handleFile counts a regular file and, when it carries multiple links,
// records it in the hardlink group for its identity key.
func (s *walkState) handleFile(fullPath string, info os.FileInfo) {
	s.filesScanned.Add(1)
	s.bytesSeen.Add(info.Size())

	if !s.opts.DetectHardlinks {
		return
	}
	st := getStatInfo(info)
	if !st.ok || st.nlink < 2 {
		return
	}

	// Identity comes from an open handle, same as directories: the lstat
	// dev/ino pair and the handle key agree on every supported platform,
	// but the handle is the contract.
	h, err := samefile.FromPath(fullPath)
	if err != nil {
		s.errCount.Add(1)
		return
	}
	key, ok := h.Key()
	h.Close()
	if !ok {
		return
	}

	g := s.groups[key]
	if g == nil {
		g = &model.LinkGroup{Key: key, Size: info.Size(), Nlink: st.nlink}
		s.groups[key] = g
	}
	g.Paths = append(g.Paths, fullPath)
}

// findAncestor returns the deepest open ancestor sharing h's identity, or
// nil. Every stack handle is open for the duration of this comparison.
func (s *walkState) findAncestor(h *samefile.Handle) *ancestor {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].handle.Equal(h) {
			return &s.stack[i]
		}
	}
	return nil
}

func (s *walkState) excluded(relPath string) bool {
	for _, p := range s.opts.ExcludePatterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}
