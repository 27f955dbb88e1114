// Package pathutil provides path segmentation for the handle resolver.
//
// Backends have no path addressing, so the only path semantics in the
// module live here: a slash-delimited path is the ordered list of its
// non-empty segments. Repeated and trailing slashes carry no meaning.
package pathutil

import (
	"path"
	"strings"
)

// Segments splits a slash-delimited path into its non-empty segments.
// The path is cleaned first, so "." and ".." are resolved; leading,
// trailing, and repeated slashes are discarded. An all-empty path (such as
// "/", "" or "///") yields no segments, which addresses the root itself.
func Segments(p string) []string {
	p = Normalize(p)
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// SplitLeaf splits a path into its parent segments and the final segment.
// The final non-empty segment is the leaf name; everything before it is
// the directory chain. ok is false when the path has no segments at all.
func SplitLeaf(p string) (parents []string, leaf string, ok bool) {
	segs := Segments(p)
	if len(segs) == 0 {
		return nil, "", false
	}
	return segs[:len(segs)-1], segs[len(segs)-1], true
}

// Normalize cleans a path into its canonical slash-delimited form without
// leading or trailing slashes. The empty string addresses the root.
func Normalize(p string) string {
	if p == "" {
		return ""
	}
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	p = strings.Trim(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// Join joins a parent key with a child name using a single slash. An empty
// parent yields the bare name, so root-level keys carry no leading slash.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
