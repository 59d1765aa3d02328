package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/finds-lab/backend/internal/entity"
	"github.com/finds-lab/backend/pkg/enum"
	"github.com/finds-lab/backend/pkg/errorx"
)

// validateFindFields checks the shared submission fields in a fixed order so
// the first failing field determines the error message. Lengths count
// characters, not bytes.
func validateFindFields(title, description, location, category string) error {
	if utf8.RuneCountInString(title) < 3 {
		return errorx.New(errorx.BadRequest, "Title is required and must be at least 3 characters")
	}

	if utf8.RuneCountInString(description) < 10 {
		return errorx.New(errorx.BadRequest, "Description is required and must be at least 10 characters")
	}

	if location == "" {
		return errorx.New(errorx.BadRequest, "Location is required")
	}

	if _, err := enum.ToEnum[entity.CategoryType](category); err != nil {
		return errorx.New(errorx.BadRequest, "Category must be one of: %s",
			strings.Join(entity.CategoryNames, ", "))
	}

	return nil
}
