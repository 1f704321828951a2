package listarchive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/pipeline"
)

func buildTarGz(t *testing.T, dir string) string {
	t.Helper()
	srcDir := filepath.Join(dir, "payload")
	if err := os.MkdirAll(filepath.Join(srcDir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "top.txt"), []byte("top"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "nested", "deep.txt"), []byte("deep"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	err := pipeline.Encode(pipeline.EncodeRequest{
		Chain:   corefmt.Chain{corefmt.Tar, corefmt.Gzip},
		Sources: []string{srcDir},
		Dest:    &buf,
	})
	if err != nil {
		t.Fatal(err)
	}

	archivePath := filepath.Join(dir, "bundle.tar.gz")
	if err := os.WriteFile(archivePath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return archivePath
}

func TestListFlattensTarGzEntries(t *testing.T) {
	dir := t.TempDir()
	archivePath := buildTarGz(t, dir)

	entries, err := List(archivePath, corefmt.Chain{corefmt.Tar, corefmt.Gzip})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one entry")
	}

	var sawTop, sawDeep bool
	for _, e := range entries {
		if filepath.Base(e.Path) == "top.txt" {
			sawTop = true
		}
		if filepath.Base(e.Path) == "deep.txt" {
			sawDeep = true
		}
	}
	if !sawTop || !sawDeep {
		t.Fatalf("expected both files listed, got %+v", entries)
	}
}

func TestBuildTreeDeduplicatesAndPreservesOrder(t *testing.T) {
	entries := []EntryInfo{
		{Path: "a/b.txt"},
		{Path: "a/c.txt"},
		{Path: "a/b.txt"}, // duplicate, should be ignored
		{Path: "d.txt"},
	}
	root := BuildTree(entries)
	if len(root.children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(root.children))
	}
	if root.children[0].name != "a" || root.children[1].name != "d.txt" {
		t.Fatalf("expected first-appearance order, got %v", namesOf(root.children))
	}
	aNode := root.children[0]
	if len(aNode.children) != 2 {
		t.Fatalf("expected 2 deduplicated children under a/, got %d", len(aNode.children))
	}
}

func TestRenderTreeUsesBoxDrawingGlyphs(t *testing.T) {
	root := BuildTree([]EntryInfo{{Path: "x/y.txt"}, {Path: "z.txt"}})
	var buf bytes.Buffer
	RenderTree(&buf, root)
	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("├── ")) && !bytes.Contains([]byte(out), []byte("└── ")) {
		t.Fatalf("expected box-drawing glyphs in output, got %q", out)
	}
}

func namesOf(nodes []*treeNode) []string {
	var names []string
	for _, n := range nodes {
		names = append(names, n.name)
	}
	return names
}
