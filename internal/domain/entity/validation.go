package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Length bounds, in characters.
const (
	TitleMinLen        = 5
	TitleMaxLen        = 200
	DescriptionMinLen  = 10
	DescriptionMaxLen  = 1000
	CategoryNameMinLen = 1
	CategoryNameMaxLen = 50
	CommentTextMinLen  = 1
	CommentTextMaxLen  = 500
)

// ValidateLength checks that the trimmed value has between min and max characters.
func ValidateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n == 0 && min > 0 {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if n < min {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", min)}
	}
	if n > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("cannot exceed %d characters", max)}
	}
	return nil
}

// ValidateTitle validates an article title.
func ValidateTitle(title string) error {
	return ValidateLength("title", title, TitleMinLen, TitleMaxLen)
}

// ValidateDescription validates an article description.
func ValidateDescription(description string) error {
	return ValidateLength("description", description, DescriptionMinLen, DescriptionMaxLen)
}

// ValidateArticleType validates the article type enum.
func ValidateArticleType(t ArticleType) error {
	if !t.Valid() {
		return &ValidationError{Field: "type", Message: `must be either "long" or "short"`}
	}
	return nil
}

// ValidateCategoryName validates a category name.
func ValidateCategoryName(name string) error {
	return ValidateLength("name", name, CategoryNameMinLen, CategoryNameMaxLen)
}

// ValidateCommentText validates comment text.
func ValidateCommentText(text string) error {
	return ValidateLength("text", text, CommentTextMinLen, CommentTextMaxLen)
}

// ValidateID checks that id is a well-formed UUID.
func ValidateID(field, id string) error {
	if id == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: field, Message: "invalid ID format"}
	}
	return nil
}

// ValidateIDs checks every id in ids; the first malformed one is reported.
func ValidateIDs(field string, ids []string) error {
	for _, id := range ids {
		if err := ValidateID(field, id); err != nil {
			return err
		}
	}
	return nil
}
