// Package drive maps journal entries onto a hierarchical remote namespace
// and performs the remote half of a sync pass: attachment upload, entry
// document upsert, per-date listing and soft deletion.
//
// The namespace layout is fixed for interoperability with already stored
// data: <root>/journal/<owner>/<year>/<month>/<day>/ holds one
// log_<id>.json document per entry plus its attachment objects.
package drive

import "context"

// Object identifies one stored object inside a folder listing.
type Object struct {
	// Name is the base name of the object inside its folder.
	Name string
	// Path is the full slash-separated path of the object.
	Path string
}

// ObjectStore is the folder/file capability the remote backend must provide.
// Implementations must treat duplicate folder creation as non-fatal and
// report absent objects as not-found rather than failing.
type ObjectStore interface {
	// EnsureFolder idempotently creates the folder at path. Safe to call
	// concurrently; an "already exists" race resolves to the existing folder.
	EnsureFolder(ctx context.Context, path string) error

	// Put writes body at path, overwriting any previous object, and returns
	// a remote-resolvable reference for it.
	Put(ctx context.Context, path, contentType string, body []byte) (string, error)

	// List returns the objects directly under folder. A folder that was
	// never created yields an empty listing, not an error.
	List(ctx context.Context, folder string) ([]Object, error)

	// Read returns the object bytes, or common.ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)

	// Trash soft-deletes the object at path. It returns whether an object
	// was found and removed; an absent object is (false, nil).
	Trash(ctx context.Context, path string) (bool, error)
}
