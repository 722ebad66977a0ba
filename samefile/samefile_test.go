package samefile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFromPath_SamePathTwice_Equal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	mustWrite(t, path, "data")

	h1, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h1.Close()

	h2, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()

	if !h1.Equal(h2) || !h2.Equal(h1) {
		t.Fatal("two handles on the same path must compare equal")
	}
	if h1.Hash() != h2.Hash() {
		t.Fatalf("equal handles must hash equally: %#x vs %#x", h1.Hash(), h2.Hash())
	}
}

func TestFromPath_DistinctPaths_NotEqual(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a")
	p2 := filepath.Join(dir, "b")
	mustWrite(t, p1, "a")
	mustWrite(t, p2, "b")

	h1, err := FromPath(p1)
	if err != nil {
		t.Fatal(err)
	}
	defer h1.Close()

	h2, err := FromPath(p2)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()

	if h1.Equal(h2) {
		t.Fatal("handles on unrelated paths must not compare equal")
	}
	k1, ok1 := h1.Key()
	k2, ok2 := h2.Key()
	if !ok1 || !ok2 {
		t.Fatal("regular files must always have a key")
	}
	if k1 == k2 {
		t.Fatalf("distinct files share a key: %+v", k1)
	}
}

func TestEqual_ReflexiveWithoutKey(t *testing.T) {
	h := &Handle{}
	if !h.Equal(h) {
		t.Fatal("a handle must equal itself even without a key")
	}
}

func TestEqual_TwoKeylessHandles_NeverEqual(t *testing.T) {
	h1 := &Handle{}
	h2 := &Handle{}
	if h1.Equal(h2) || h2.Equal(h1) {
		t.Fatal("two distinct keyless handles must never compare equal")
	}
	if h1.Hash() != 0 || h2.Hash() != 0 {
		t.Fatal("keyless handles hash to the fixed sentinel")
	}
}

func TestEqual_KeylessVsKeyed_NotEqual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	mustWrite(t, path, "x")

	keyed, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer keyed.Close()

	keyless := &Handle{}
	if keyed.Equal(keyless) || keyless.Equal(keyed) {
		t.Fatal("a keyless handle is never equal to a different handle")
	}
}

func TestFromPath_Nonexistent_Fails(t *testing.T) {
	h, err := FromPath(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		h.Close()
		t.Fatal("expected an open failure")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
	if h != nil {
		t.Fatal("failed construction must not produce a handle")
	}
}

func TestFromFile_AdoptsOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	mustWrite(t, path, "x")

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	h1, err := FromFile(f)
	if err != nil {
		f.Close()
		t.Fatal(err)
	}
	defer h1.Close()

	h2, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()

	if !h1.Equal(h2) {
		t.Fatal("adopted file and path-opened handle must compare equal")
	}
	if h1.File() == nil {
		t.Fatal("handle must expose its underlying file")
	}
}

func TestStdStreams_ConstructionNeverFails(t *testing.T) {
	for name, ctor := range map[string]func() (*Handle, error){
		"stdin":  Stdin,
		"stdout": Stdout,
		"stderr": Stderr,
	} {
		h, err := ctor()
		if err != nil {
			t.Fatalf("%s: construction must not fail: %v", name, err)
		}
		if h.File() == nil {
			t.Fatalf("%s: missing underlying file", name)
		}
		if err := h.Close(); err != nil {
			t.Fatalf("%s: close: %v", name, err)
		}
	}

	// Borrowed close must not have closed the real streams.
	if _, err := os.Stderr.WriteString(""); err != nil {
		t.Fatalf("stderr was closed by a borrowed handle: %v", err)
	}
}

func TestStdin_RedirectedFromFile_MatchesPathHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input")
	mustWrite(t, path, "redirected")

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	orig := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = orig }()

	s1, err := Stdin()
	if err != nil {
		t.Fatal(err)
	}
	defer s1.Close()
	s2, err := Stdin()
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	if !s1.Equal(s2) {
		t.Fatal("two stdin handles over the same redirection must compare equal")
	}

	byPath, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer byPath.Close()
	if !s1.Equal(byPath) {
		t.Fatal("redirected stdin must equal a handle opened on the same file")
	}
}

func TestStdin_DisconnectedStream_YieldsKeylessHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	mustWrite(t, path, "x")

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	// A closed file stands in for a disconnected console: the identity
	// query on it fails the same way.
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	orig := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = orig }()

	h1, err := Stdin()
	if err != nil {
		t.Fatalf("construction must tolerate a failed identity query: %v", err)
	}
	defer h1.Close()

	if _, ok := h1.Key(); ok {
		t.Fatal("failed extraction must leave the handle keyless")
	}
	if h1.Hash() != 0 {
		t.Fatalf("keyless handle must hash to the sentinel, got %#x", h1.Hash())
	}
	if !h1.Equal(h1) {
		t.Fatal("a keyless handle must still equal itself")
	}

	h2, err := Stdin()
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()
	if h1.Equal(h2) || h2.Equal(h1) {
		t.Fatal("two keyless handles over the same stream must not compare equal")
	}
}

func TestScenario_CloseAndReopenUnrelated(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "f")
	mustWrite(t, pathA, "A")

	h1, err := FromPath(pathA)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := FromPath(pathA)
	if err != nil {
		h1.Close()
		t.Fatal(err)
	}
	defer h2.Close()

	if !h1.Equal(h2) {
		t.Fatal("h1 and h2 on the same open path must compare equal")
	}
	if err := h1.Close(); err != nil {
		t.Fatal(err)
	}

	pathB := filepath.Join(dir, "g")
	mustWrite(t, pathB, "B")
	h3, err := FromPath(pathB)
	if err != nil {
		t.Fatal(err)
	}
	defer h3.Close()

	if h3.Equal(h2) {
		t.Fatal("unrelated file must not compare equal to the still-open handle")
	}
}

func TestFromPath_Directory(t *testing.T) {
	dir := t.TempDir()

	h1, err := FromPath(dir)
	if err != nil {
		t.Fatalf("directories must open for identity: %v", err)
	}
	defer h1.Close()
	h2, err := FromPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer h2.Close()

	if !h1.Equal(h2) {
		t.Fatal("two handles on the same directory must compare equal")
	}
}

func TestIsSameFile(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a")
	p2 := filepath.Join(dir, "b")
	mustWrite(t, p1, "a")
	mustWrite(t, p2, "b")

	same, err := IsSameFile(p1, p1)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Fatal("a path must be the same file as itself")
	}

	same, err = IsSameFile(p1, p2)
	if err != nil {
		t.Fatal(err)
	}
	if same {
		t.Fatal("distinct files reported as same")
	}
}

func TestIsSameFile_ThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	mustWrite(t, target, "x")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported here: %v", err)
	}

	same, err := IsSameFile(target, link)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Fatal("a symlink must resolve to the same file as its target")
	}
}

func TestIsSameFile_ThroughHardlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "hardlink")
	mustWrite(t, target, "x")
	if err := os.Link(target, link); err != nil {
		t.Skipf("hardlinks not supported here: %v", err)
	}

	same, err := IsSameFile(target, link)
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Fatal("a hardlink must be the same file as its target")
	}
}

func TestClose_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	mustWrite(t, path, "x")

	h, err := FromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close must be a no-op: %v", err)
	}
}
