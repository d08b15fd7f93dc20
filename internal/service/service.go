// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the application logic between the HTTP
// boundary and the store layer. Services validate input, derive the
// computed post fields, and translate store errors into typed
// application errors. Handlers never see raw database errors.
package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"inkwell/internal/models"
	"inkwell/internal/store"
)

// isUniqueViolation and isForeignKeyViolation recognize constraint
// failures surfaced by the store so services can map them to typed
// errors.
func isUniqueViolation(err error) bool     { return store.IsUniqueViolation(err) }
func isForeignKeyViolation(err error) bool { return store.IsForeignKeyViolation(err) }

// PostRepository is the persistence surface the post lifecycle needs.
// *store.PostStore satisfies it; tests substitute in-memory fakes.
type PostRepository interface {
	Create(p *models.Post) (*models.Post, error)
	FindByID(id int64) (*models.Post, error)
	FindBySlug(slug string) (*models.Post, error)
	SlugExists(slug string, excludeID int64) (bool, error)
	Update(p *models.Post) (*models.Post, error)
	Delete(id int64) (bool, error)
	List(status *models.PostStatus) ([]models.Post, error)
	IncrementViews(id int64) (int, error)
}

// CommentRepository is the persistence surface for comment submission
// and moderation.
type CommentRepository interface {
	Create(c *models.Comment) (*models.Comment, error)
	FindByID(id int64) (*models.Comment, error)
	ListByPost(postID int64, approvedOnly bool) ([]models.Comment, error)
	List() ([]models.Comment, error)
	Approve(id int64) (*models.Comment, error)
	Delete(id int64) (bool, error)
}

// SubscriberRepository is the persistence surface for the newsletter.
type SubscriberRepository interface {
	Subscribe(email string) (*models.Subscriber, error)
	List() ([]models.Subscriber, error)
}

// validate is the shared validator instance. Field names in error
// messages come from json tags so they match the wire format.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput runs struct validation and converts the first failure
// into a typed validation error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
		fe := ve[0]
		return models.NewValidationError(fe.Field(), validationMessage(fe))
	}
	return models.NewValidationError("", err.Error())
}

// validationMessage renders a field error as a short client-facing message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
