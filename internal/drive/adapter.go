package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/logging"
	"github.com/dmitrijs2005/daylog/internal/models"
)

var errBadDateKey = errors.New("malformed date key")

// Adapter translates entries plus an owner identity into object-store
// operations. It holds no per-sync state and is safe to share.
type Adapter struct {
	store ObjectStore
	root  string
	log   logging.Logger
}

// NewAdapter returns an Adapter writing under the given root folder.
func NewAdapter(store ObjectStore, root string, log logging.Logger) *Adapter {
	return &Adapter{store: store, root: root, log: log.With("component", "drive")}
}

// EnsurePath idempotently creates the folder chain for the owner and date
// and returns the date folder path.
func (a *Adapter) EnsurePath(ctx context.Context, owner, dateKey string) (string, error) {
	chain, err := pathChain(a.root, owner, dateKey)
	if err != nil {
		return "", err
	}
	for _, folder := range chain {
		if err := a.store.EnsureFolder(ctx, folder); err != nil {
			return "", fmt.Errorf("ensure folder %s: %w", folder, err)
		}
	}
	return chain[len(chain)-1], nil
}

// UploadEntry pushes one entry to the remote store and returns it exactly as
// persisted there, with sync state synced.
//
// Every attachment still carrying inline bytes is uploaded under its
// deterministic object name and rewritten to a remote reference; attachments
// that already live remotely pass through untouched. An individual attachment
// upload failure does not abort the entry: the attachment keeps its inline
// payload so a later pass retries it, and the document is still written.
func (a *Adapter) UploadEntry(ctx context.Context, owner string, e *models.Entry) (*models.Entry, error) {
	folder, err := a.EnsurePath(ctx, owner, e.DateKey)
	if err != nil {
		return nil, err
	}

	out := e.Clone()
	for i := range out.Attachments {
		att := &out.Attachments[i]
		if !att.Payload.Inline() {
			continue
		}

		contentType := att.MimeType
		if contentType == "" {
			contentType = att.Payload.Mime()
		}

		name := attachmentName(out.CreatedAt, *att)
		ref, err := a.store.Put(ctx, path.Join(folder, name), contentType, att.Payload.Bytes())
		if err != nil {
			a.log.Warn(ctx, "attachment upload failed, keeping inline payload",
				"entry", out.ID, "attachment", att.ID, "error", err.Error())
			continue
		}
		att.Payload = models.NewRemotePayload(ref)
		att.RemoteID = ref
	}

	out.SyncState = models.SyncStateSynced

	doc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode entry %s: %w", out.ID, err)
	}
	if _, err := a.store.Put(ctx, path.Join(folder, entryDocName(out.ID)), "application/json", doc); err != nil {
		return nil, fmt.Errorf("write entry document %s: %w", out.ID, err)
	}

	return out, nil
}

// FetchEntries lists and parses every entry document under the date folder.
// Missing intermediate folders yield an empty result: no entries ever existed
// there. A document that fails to parse is skipped and logged; it does not
// abort the rest of the pull.
func (a *Adapter) FetchEntries(ctx context.Context, owner, dateKey string) ([]models.Entry, error) {
	folder, err := datePath(a.root, owner, dateKey)
	if err != nil {
		return nil, err
	}

	objects, err := a.store.List(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", folder, err)
	}

	var result []models.Entry
	for _, obj := range objects {
		if !strings.HasPrefix(obj.Name, entryDocPrefix) || !strings.HasSuffix(obj.Name, ".json") {
			continue
		}
		data, err := a.store.Read(ctx, obj.Path)
		if err != nil {
			a.log.Warn(ctx, "skipping unreadable entry document", "path", obj.Path, "error", err.Error())
			continue
		}
		var e models.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			a.log.Warn(ctx, "skipping malformed entry document", "path", obj.Path, "error", err.Error())
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// ReadObject streams back the bytes behind a remote attachment reference,
// for the UI's pass-through download proxy.
func (a *Adapter) ReadObject(ctx context.Context, ref string) ([]byte, error) {
	return a.store.Read(ctx, ref)
}

// TrashEntry soft-deletes the entry document for id under the date folder.
// It reports whether a document was found and removed; an absent document is
// (false, nil) — there is nothing left to delete.
func (a *Adapter) TrashEntry(ctx context.Context, owner, dateKey, id string) (bool, error) {
	if dateKey == "" {
		// Tombstone without a recorded date: the entry was never seen
		// locally in synced form, so there is no remote document to remove.
		return false, nil
	}
	folder, err := datePath(a.root, owner, dateKey)
	if err != nil {
		return false, err
	}
	return a.store.Trash(ctx, path.Join(folder, entryDocName(id)))
}
