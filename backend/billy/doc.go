// Package billy provides go-billy backed storage backends: an in-memory
// tree for tests and in-process use, and a local-disk tree rooted at a
// directory.
//
// The adapter is thin: a directory handle is a path-scoped view into the
// underlying billy.Filesystem, and each named child lookup is a stat (plus
// a create when requested). Writable streams are truncating creates, which
// matches the replace-content semantics of the operation layer.
package billy
