package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/daylog/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks structural constraints on the entry. An entry must carry
// either text or at least one attachment.
func (e *Entry) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("entry validation: %w", err)
	}
	if strings.TrimSpace(e.Text) == "" && len(e.Attachments) == 0 {
		return common.ErrEmptyEntry
	}
	return nil
}

// Validate checks structural constraints on the report.
func (r *Report) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("report validation: %w", err)
	}
	return nil
}
