// Package services contains stateless domain services for the idea bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/trendforge/services/idea/domain/models"
)

const maxTextFieldLength = 4096

// ValidateDraft enforces business rules on generated content beyond the
// structural non-empty check performed by IdeaDraft.Validate.
//
// Business rules:
//   - No field may be only whitespace
//   - No control characters (Unicode category Cc) in any field
//   - No field may exceed 4096 characters
func ValidateDraft(draft models.IdeaDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	for field, value := range map[string]string{
		"title":       draft.Title,
		"description": draft.Description,
		"genre":       draft.Genre,
		"platform":    draft.Platform,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("draft field %q must not be only whitespace", field)
		}
		if len(value) > maxTextFieldLength {
			return fmt.Errorf("draft field %q exceeds %d characters", field, maxTextFieldLength)
		}
		for _, r := range value {
			if unicode.IsControl(r) && r != '\n' && r != '\t' {
				return fmt.Errorf("draft field %q contains control characters", field)
			}
		}
	}

	return nil
}

// ValidateIdeaForCreation performs cross-field validation on a fully-constructed
// GameIdea aggregate before it is persisted. It assumes the idea was built via
// models.NewGameIdea and adds business-level checks on the whole artifact.
func ValidateIdeaForCreation(idea *models.GameIdea) error {
	if idea == nil {
		return fmt.Errorf("idea cannot be nil")
	}

	if idea.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if strings.TrimSpace(idea.TrendTopic) == "" {
		return fmt.Errorf("trend_topic must be set")
	}

	if err := ValidateDraft(models.IdeaDraft{
		Title:       idea.Title,
		Description: idea.Description,
		Genre:       idea.Genre,
		Platform:    idea.Platform,
	}); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}

	if idea.CreatedAt.IsZero() {
		return fmt.Errorf("created_at must be set")
	}

	return nil
}
