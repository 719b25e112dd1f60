package drive

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/models"
)

const journalFolder = "journal"

// datePath builds the folder chain for one owner and date:
// <root>/journal/<owner>/<year>/<month>/<day>.
func datePath(root, owner, dateKey string) (string, error) {
	parts := strings.Split(dateKey, "-")
	if len(parts) != 3 {
		return "", fmt.Errorf("date path: %w: %q", errBadDateKey, dateKey)
	}
	if _, err := models.ParseDateKey(dateKey); err != nil {
		return "", err
	}
	return path.Join(root, journalFolder, owner, parts[0], parts[1], parts[2]), nil
}

// pathChain returns every folder of the date path, outermost first, so the
// chain can be created level by level.
func pathChain(root, owner, dateKey string) ([]string, error) {
	full, err := datePath(root, owner, dateKey)
	if err != nil {
		return nil, err
	}
	segments := strings.Split(full, "/")
	chain := make([]string, 0, len(segments))
	for i := range segments {
		chain = append(chain, strings.Join(segments[:i+1], "/"))
	}
	return chain, nil
}

// entryDocName is the naming convention for entry documents.
func entryDocName(id string) string {
	return "log_" + id + ".json"
}

const entryDocPrefix = "log_"

// attachmentName derives the deterministic object name for one attachment:
// <epochTimestamp>_<attachmentId>.<ext>. The extension comes from the
// original filename if present, else is guessed from the MIME type, else "bin".
func attachmentName(createdAt int64, att models.Attachment) string {
	return fmt.Sprintf("%d_%s.%s", createdAt, att.ID, attachmentExt(att.Name, att.MimeType))
}

func attachmentExt(filename, mimeType string) string {
	if ext := strings.TrimPrefix(path.Ext(filename), "."); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}
