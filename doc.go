// Package opfskit exposes a familiar path-addressed storage API
// ("/a/b/c.txt") over backends that natively know nothing about paths:
// OPFS-style handle trees where every node is reached by asking a parent
// directory handle for a named child.
//
// The package layers three pieces over the core.Backend capability: a path
// resolver that turns slash-delimited paths into concrete handles by
// walking named lookups from a lazily initialized root, an encoding-aware
// byte container (package content), and a dual-convention dispatcher that
// runs every operation as one asynchronous task and delivers its outcome
// either through a returned Deferred or through a supplied completion
// callback.
//
// Deferred convention:
//
//	fsys := opfskit.New(billy.NewMemory())
//	err := fsys.WriteFile("/notes/today.txt", "hello").Wait(ctx)
//	data, err := fsys.ReadFile("/notes/today.txt").Await(ctx)
//	fmt.Println(data.Text())
//
// Callback convention:
//
//	fsys.ReadFile("/notes/today.txt", func(err error, data opfskit.FileData) {
//	    ...
//	})
//
// Both conventions execute identically; only the delivery of the outcome
// differs. Callback calls return a nil Deferred and never panic.
package opfskit
