// Package snippet defines the core domain types for code snippets.
package snippet

import (
	"errors"
	"time"
)

// Snippet represents a stored unit of code text with descriptive metadata.
type Snippet struct {
	ID          string    `json:"id"`          // Unique, assigned once at creation
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	Language    Language  `json:"language"`
	Category    Category  `json:"category"`
	Tags        []string  `json:"tags"`        // Ordered, duplicates preserved verbatim
	CreatedAt   time.Time `json:"createdAt"`   // Immutable after creation
	UpdatedAt   time.Time `json:"updatedAt"`   // Refreshed on every successful mutation
	Favorite    bool      `json:"favorite"`
}

// Language is one of a fixed set of language tags.
type Language string

// Supported language tags.
const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangRust       Language = "rust"
	LangC          Language = "c"
	LangCpp        Language = "cpp"
	LangJava       Language = "java"
	LangRuby       Language = "ruby"
	LangShell      Language = "shell"
	LangSQL        Language = "sql"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangYAML       Language = "yaml"
	LangMarkdown   Language = "markdown"
	LangOther      Language = "other"
)

// ValidLanguages lists the supported language values.
var ValidLanguages = []Language{
	LangGo, LangPython, LangJavaScript, LangTypeScript, LangRust,
	LangC, LangCpp, LangJava, LangRuby, LangShell, LangSQL,
	LangHTML, LangCSS, LangYAML, LangMarkdown, LangOther,
}

// IsValid reports whether l is a supported language tag.
func (l Language) IsValid() bool {
	for _, valid := range ValidLanguages {
		if l == valid {
			return true
		}
	}
	return false
}

// Category is one of a fixed set of category tags.
type Category string

// Supported category tags.
const (
	CategoryFunction Category = "function"
	CategorySnippet  Category = "snippet"
	CategoryTemplate Category = "template"
	CategoryCommand  Category = "command"
	CategoryConfig   Category = "config"
	CategoryQuery    Category = "query"
	CategoryOther    Category = "other"
)

// ValidCategories lists the supported category values.
var ValidCategories = []Category{
	CategoryFunction, CategorySnippet, CategoryTemplate,
	CategoryCommand, CategoryConfig, CategoryQuery, CategoryOther,
}

// IsValid reports whether c is a supported category tag.
func (c Category) IsValid() bool {
	for _, valid := range ValidCategories {
		if c == valid {
			return true
		}
	}
	return false
}

// Validation errors.
var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyCode        = errors.New("code is required")
	ErrInvalidLanguage  = errors.New("language is not a supported value")
	ErrInvalidCategory  = errors.New("category is not a supported value")
)

// CreateInput carries the fields needed to create a snippet.
// Tags and Favorite are optional; they default to empty and false.
type CreateInput struct {
	Title       string
	Description string
	Code        string
	Language    Language
	Category    Category
	Tags        []string
	Favorite    bool
}

// Validate checks that all required creation fields are present and valid.
func (in *CreateInput) Validate() error {
	if in.Title == "" {
		return ErrEmptyTitle
	}
	if in.Description == "" {
		return ErrEmptyDescription
	}
	if in.Code == "" {
		return ErrEmptyCode
	}
	if !in.Language.IsValid() {
		return ErrInvalidLanguage
	}
	if !in.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// UpdateInput carries a partial update. Nil fields keep the prior value.
type UpdateInput struct {
	Title       *string
	Description *string
	Code        *string
	Language    *Language
	Category    *Category
	Tags        *[]string
	Favorite    *bool
}

// Validate checks that any supplied enum field carries a valid value.
func (in *UpdateInput) Validate() error {
	if in.Language != nil && !in.Language.IsValid() {
		return ErrInvalidLanguage
	}
	if in.Category != nil && !in.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}

// Apply overwrites the fields present in the input and refreshes UpdatedAt.
// ID and CreatedAt are never touched.
func (in *UpdateInput) Apply(s *Snippet, now time.Time) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Code != nil {
		s.Code = *in.Code
	}
	if in.Language != nil {
		s.Language = *in.Language
	}
	if in.Category != nil {
		s.Category = *in.Category
	}
	if in.Tags != nil {
		s.Tags = *in.Tags
	}
	if in.Favorite != nil {
		s.Favorite = *in.Favorite
	}
	s.UpdatedAt = now
}
