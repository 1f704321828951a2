// Package listarchive lists archive contents, flat or as a tree. The
// box-drawing tree renderer is grounded in pelican-dev-wings' own
// directory-tree printers (its filesystem browsing endpoints print a
// similar nested structure); this package builds an explicit ordered
// prefix tree instead of recursing over a live filesystem, since the
// source here is archive entries, not disk.
package listarchive

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/archio-dev/archio/internal/codec"
	"github.com/archio-dev/archio/internal/corefmt"
	"github.com/archio-dev/archio/internal/corerr"
)

// EntryInfo is one flattened archive entry, ready to print.
type EntryInfo struct {
	Path  string
	Size  int64
	IsDir bool
}

// List opens the decoder chain up to but not including the outermost
// archive step, then iterates the archive format's native entries.
func List(sourcePath string, chain corefmt.Chain) ([]EntryInfo, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, corerr.FileNotFound(sourcePath)
	}
	defer file.Close()

	var current io.Reader = file
	for i := len(chain) - 1; i >= 1; i-- {
		c, err := codec.ForCompression(chain[i])
		if err != nil {
			return nil, err
		}
		rc, err := c.OpenReader(current)
		if err != nil {
			return nil, corerr.Wrap("error opening "+chain[i].String()+" stream", err)
		}
		defer rc.Close()
		current = rc
	}

	outermost := chain[0]
	var it codec.ArchiveIterator

	switch outermost {
	case corefmt.Tar, corefmt.Rar:
		reader, err := codec.ForArchiveReader(outermost)
		if err != nil {
			return nil, err
		}
		it, err = reader.OpenArchive(current)
		if err != nil {
			return nil, corerr.Wrap("error opening "+outermost.String()+" archive", err)
		}

	case corefmt.Zip, corefmt.SevenZip:
		reader, err := codec.ForSeekingArchiveReader(outermost)
		if err != nil {
			return nil, err
		}
		if len(chain) == 1 {
			info, statErr := file.Stat()
			if statErr != nil {
				return nil, corerr.Wrap("could not stat archive", statErr)
			}
			it, err = reader.OpenArchive(file, info.Size())
		} else {
			var buf bytes.Buffer
			if _, copyErr := io.Copy(&buf, current); copyErr != nil {
				return nil, corerr.Wrap("error buffering archive into memory", copyErr)
			}
			cursor := bytes.NewReader(buf.Bytes())
			it, err = reader.OpenArchive(cursor, int64(buf.Len()))
		}
		if err != nil {
			return nil, corerr.Wrap("error opening "+outermost.String()+" archive", err)
		}

	default:
		return nil, corerr.UnsupportedFormat(outermost.String() + " has no listable entries")
	}

	var entries []EntryInfo
	for {
		e, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, corerr.Wrap("error reading archive entry", err)
		}
		entries = append(entries, EntryInfo{
			Path:  e.NameInArchive,
			Size:  e.Info.Size(),
			IsDir: e.Info.IsDir(),
		})
	}
	return entries, nil
}

// treeNode is one node in the ordered prefix tree; children preserve
// first-appearance order.
type treeNode struct {
	name     string
	isDir    bool
	children []*treeNode
	index    map[string]*treeNode
}

func newTreeNode(name string, isDir bool) *treeNode {
	return &treeNode{name: name, isDir: isDir, index: make(map[string]*treeNode)}
}

func (n *treeNode) child(name string, isDir bool) *treeNode {
	if c, ok := n.index[name]; ok {
		if isDir {
			c.isDir = true
		}
		return c
	}
	c := newTreeNode(name, isDir)
	n.index[name] = c
	n.children = append(n.children, c)
	return c
}

// BuildTree deduplicates entries by path and inserts them into an
// ordered prefix tree, in order of first appearance.
func BuildTree(entries []EntryInfo) *treeNode {
	root := newTreeNode("", true)
	seen := make(map[string]bool)

	for _, e := range entries {
		path := strings.Trim(e.Path, "/")
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		parts := strings.Split(path, "/")
		cur := root
		for i, part := range parts {
			isDir := e.IsDir || i < len(parts)-1
			cur = cur.child(part, isDir)
		}
	}
	return root
}

// RenderTree writes root to w using box-drawing glyphs.
func RenderTree(w io.Writer, root *treeNode) {
	renderChildren(w, root, "")
}

func renderChildren(w io.Writer, node *treeNode, prefix string) {
	for i, child := range node.children {
		last := i == len(node.children)-1
		connector := "├── "
		nextPrefix := prefix + "│   "
		if last {
			connector = "└── "
			nextPrefix = prefix + "    "
		}
		name := child.name
		if child.isDir {
			name += "/"
		}
		fmt.Fprintln(w, prefix+connector+name)
		renderChildren(w, child, nextPrefix)
	}
}

// SortedByPath returns entries sorted lexically, for flat-mode display.
func SortedByPath(entries []EntryInfo) []EntryInfo {
	sorted := make([]EntryInfo, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })
	return sorted
}
