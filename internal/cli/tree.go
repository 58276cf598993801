package cli

import (
	"fmt"
	"io"
	"strings"
)

// Tree glyphs, matching the unix tree program.
const (
	treeEnd  = "└── "
	treeNext = "├── "
	treePipe = "│   "
	treeTab  = "    "
)

// Lister is the slice of the client Tree needs; the slash variant marks
// directories so recursion knows where to descend.
type Lister interface {
	DirAllSlash(path string) ([]string, error)
}

// Tree prints the directory structure under root, one exchange per
// directory level. Unreadable subdirectories are reported inline and
// skipped so one bad branch does not end the walk.
func Tree(w io.Writer, l Lister, root string) error {
	fmt.Fprintln(w, root)
	entries, err := l.DirAllSlash(root)
	if err != nil {
		return err
	}
	printLevel(w, l, entries, "")
	return nil
}

func printLevel(w io.Writer, l Lister, entries []string, prefix string) {
	for i, entry := range entries {
		last := i == len(entries)-1

		glyph := treeNext
		if last {
			glyph = treeEnd
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, glyph, entryName(entry))

		if !strings.HasSuffix(entry, "/") {
			continue
		}
		childPrefix := prefix + treePipe
		if last {
			childPrefix = prefix + treeTab
		}
		children, err := l.DirAllSlash(entry)
		if err != nil {
			fmt.Fprintf(w, "%s%s[error: %v]\n", childPrefix, treeEnd, err)
			continue
		}
		printLevel(w, l, children, childPrefix)
	}
}

// entryName is the display name of a listing entry: the last path segment,
// without the directory marker.
func entryName(entry string) string {
	trimmed := strings.TrimSuffix(entry, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
