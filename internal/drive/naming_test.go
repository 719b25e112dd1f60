package drive

import (
	"testing"

	"github.com/dmitrijs2005/daylog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatePath(t *testing.T) {
	got, err := datePath("daylog", "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, "daylog/journal/u1/2024/05/01", got)

	_, err = datePath("daylog", "u1", "20240501")
	require.Error(t, err)

	_, err = datePath("daylog", "u1", "2024-13-01")
	require.Error(t, err)
}

func TestPathChain(t *testing.T) {
	chain, err := pathChain("daylog", "u1", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"daylog",
		"daylog/journal",
		"daylog/journal/u1",
		"daylog/journal/u1/2024",
		"daylog/journal/u1/2024/05",
		"daylog/journal/u1/2024/05/01",
	}, chain)
}

func TestEntryDocName(t *testing.T) {
	assert.Equal(t, "log_a1.json", entryDocName("a1"))
}

func TestAttachmentName(t *testing.T) {
	tests := []struct {
		name string
		att  models.Attachment
		want string
	}{
		{
			name: "extension from filename",
			att:  models.Attachment{ID: "att1", Name: "photo.png", MimeType: "image/jpeg"},
			want: "1714550400000_att1.png",
		},
		{
			name: "extension guessed from mime type",
			att:  models.Attachment{ID: "att2", Name: "photo", MimeType: "image/png"},
			want: "1714550400000_att2.png",
		},
		{
			name: "fallback extension",
			att:  models.Attachment{ID: "att3", Name: "blob", MimeType: ""},
			want: "1714550400000_att3.bin",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attachmentName(1714550400000, tt.att))
		})
	}
}
