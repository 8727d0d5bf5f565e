// Package notes is the Composition Root for the notes application.
//
// It connects the core business logic (pkg/core) with the filesystem adapter
// (pkg/adapters/fs). Every note lives in a single local file whose extension
// picks the format (.json, .yaml/.yml or .csv); each mutation rewrites the file
// atomically through a temp file and a rename.
//
// Usage:
//
//	svc, err := notes.New("./notes.json", notes.WithLogger(logger))
//
//	note, err := svc.Create(ctx, "Buy milk", []string{"errand"})
//	matches, err := svc.Find(ctx, "milk")
package notes
