// Package models defines the journal data types shared by the local store,
// the remote adapter and the sync engine.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SyncState tracks where an entry stands relative to the remote store.
type SyncState string

const (
	// SyncStatePending marks local changes not yet uploaded.
	SyncStatePending SyncState = "pending"
	// SyncStateSynced marks an entry that is an exact mirror of the remote copy.
	SyncStateSynced SyncState = "synced"
	// SyncStateError marks an entry whose last upload attempt failed.
	SyncStateError SyncState = "error"
)

// Category classifies an entry.
type Category string

const (
	CategoryWork  Category = "work"
	CategoryStudy Category = "study"
	CategoryLife  Category = "life"
)

// DefaultCategory is applied when an entry arrives without a category.
const DefaultCategory = CategoryLife

// DateKeyLayout is the calendar-date format used throughout the app.
const DateKeyLayout = "2006-01-02"

// Entry is one journal record. The JSON field names match the documents
// already stored remotely, so they must not change.
type Entry struct {
	// ID is a globally unique identifier and the merge key. Immutable.
	ID string `json:"id" validate:"required"`

	// DateKey is the calendar date (YYYY-MM-DD) the entry belongs to.
	// It determines remote placement and is immutable after creation.
	DateKey string `json:"date" validate:"required,datetime=2006-01-02"`

	// CreatedAt is the creation time in epoch milliseconds; entries within a
	// date are ordered by this field.
	CreatedAt int64 `json:"timestamp" validate:"required"`

	// DisplayTime is a precomputed human-readable label (HH:MM). Cosmetic.
	DisplayTime string `json:"timeLabel"`

	// Text is the free-form content. May be empty if attachments are present.
	Text string `json:"content"`

	Category Category `json:"category,omitempty" validate:"omitempty,oneof=work study life"`

	Attachments []Attachment `json:"attachments"`

	// SyncState may only be transitioned by the sync engine.
	SyncState SyncState `json:"syncStatus,omitempty"`
}

// NewEntry builds a pending entry for the given moment, filling ID,
// DateKey, CreatedAt and DisplayTime.
func NewEntry(text string, category Category, attachments []Attachment, at time.Time) *Entry {
	if category == "" {
		category = DefaultCategory
	}
	return &Entry{
		ID:          uuid.NewString(),
		DateKey:     at.Format(DateKeyLayout),
		CreatedAt:   at.UnixMilli(),
		DisplayTime: at.Format("15:04"),
		Text:        text,
		Category:    category,
		Attachments: attachments,
		SyncState:   SyncStatePending,
	}
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.Attachments != nil {
		c.Attachments = make([]Attachment, len(e.Attachments))
		copy(c.Attachments, e.Attachments)
	}
	return &c
}

// Attachment is a file or image bound to one entry. The payload starts out
// inline (a data URI on the wire) and is rewritten to a remote reference once
// uploaded; RemoteID is set only after a successful upload.
type Attachment struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MimeType string  `json:"type"`
	Payload  Payload `json:"url"`
	RemoteID string  `json:"remoteId,omitempty"`
}

// NewAttachment wraps raw bytes as an inline attachment.
func NewAttachment(name, mimeType string, data []byte) Attachment {
	return Attachment{
		ID:       uuid.NewString(),
		Name:     name,
		MimeType: mimeType,
		Payload:  NewInlinePayload(data, mimeType),
	}
}

// Uploaded reports whether the attachment already lives in the remote store.
func (a Attachment) Uploaded() bool {
	return a.RemoteID != "" && !a.Payload.Inline()
}

// Tombstone records a local deletion that has not yet been confirmed
// remotely. DateKey is kept so the remote document can be addressed without
// a global search.
type Tombstone struct {
	ID      string
	DateKey string
}

// ParseDateKey validates and parses a YYYY-MM-DD date key.
func ParseDateKey(dateKey string) (time.Time, error) {
	t, err := time.Parse(DateKeyLayout, dateKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", dateKey, err)
	}
	return t, nil
}
