package blog

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/StefanHaring/InkPress/internal/pkg/env"
)

// DefaultMaxContentLength is the configured content ceiling. The historical
// bound moved between 500 and 50000; we standardize on the larger value and
// keep it overridable via BLOG_MAX_CONTENT_LENGTH.
const DefaultMaxContentLength = 50000

var validate = validator.New()

// MaxContentLength returns the active content ceiling
func MaxContentLength() int {
	if raw := env.GetEnv("BLOG_MAX_CONTENT_LENGTH", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxContentLength
}

// ImageUpload carries a file part destined for the asset store.
type ImageUpload struct {
	Reader   io.Reader
	Size     int64
	MimeType string
	Filename string
}

// CreateInput is the full payload for creating a post. ImageURL is an
// externally supplied address used as-is; Image is an upload handled through
// the asset store. At most one of the two is expected.
type CreateInput struct {
	Title        string `validate:"required,min=3,max=255"`
	Content      string `validate:"required,min=10"`
	Published    bool
	CategoryName string       `validate:"required"`
	ImageURL     string       `validate:"omitempty,url"`
	Image        *ImageUpload `validate:"-"`
}

// UpdateInput is the partial payload for updating a post. Nil fields keep
// their prior values; non-nil fields must individually pass their rules.
type UpdateInput struct {
	Title        *string
	Content      *string
	Published    *bool
	CategoryName *string
	ImageURL     *string
	Image        *ImageUpload
}

// validateCreate normalizes and checks a full create payload. Pure aside from
// trimming the receiver's fields.
func validateCreate(in *CreateInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.CategoryName = strings.TrimSpace(in.CategoryName)

	if err := validate.Struct(in); err != nil {
		return firstViolation(err)
	}
	if utf8.RuneCountInString(in.Content) > MaxContentLength() {
		return contentTooLong()
	}
	return nil
}

// validateUpdate checks each supplied field of a partial payload against the
// same rule the full payload uses.
func validateUpdate(in *UpdateInput) error {
	if in.Title != nil {
		*in.Title = strings.TrimSpace(*in.Title)
		if err := validate.Var(*in.Title, "min=3,max=255"); err != nil {
			return messageFor("Title", err)
		}
	}
	if in.Content != nil {
		if err := validate.Var(*in.Content, "min=10"); err != nil {
			return messageFor("Content", err)
		}
		if utf8.RuneCountInString(*in.Content) > MaxContentLength() {
			return contentTooLong()
		}
	}
	if in.CategoryName != nil {
		*in.CategoryName = strings.TrimSpace(*in.CategoryName)
		if *in.CategoryName == "" {
			return newValidationError("CategoryName", "Category name must not be empty")
		}
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		if err := validate.Var(*in.ImageURL, "url"); err != nil {
			return messageFor("ImageURL", err)
		}
	}
	return nil
}

// firstViolation turns a validator error into the taxonomy's ValidationError,
// naming the first failing field-rule only.
func firstViolation(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return newValidationError("", "Invalid input")
	}
	return messageFor(errs[0].Field(), errs[0])
}

func messageFor(field string, err error) *ValidationError {
	tag := ""
	if fe, ok := err.(validator.FieldError); ok {
		tag = fe.Tag()
	} else if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		tag = errs[0].Tag()
	}

	switch field {
	case "Title":
		switch tag {
		case "required":
			return newValidationError(field, "Title is required")
		case "max":
			return newValidationError(field, "Title must be less than 255 characters long")
		default:
			return newValidationError(field, "Title must be at least 3 characters long")
		}
	case "Content":
		if tag == "required" {
			return newValidationError(field, "Content is required")
		}
		return newValidationError(field, "Content must be at least 10 characters long")
	case "CategoryName":
		return newValidationError(field, "Category name is required")
	case "ImageURL":
		return newValidationError(field, "Invalid image URL")
	}
	return newValidationError(field, "Invalid input")
}

func contentTooLong() *ValidationError {
	return newValidationError("Content", fmt.Sprintf("Content must be less than %d characters long", MaxContentLength()))
}
