package models

import "errors"

// Errors the handlers translate into actionable responses for the owner.
// Anything else coming out of the store is surfaced verbatim.
var (
	ErrNotFound      = errors.New("not found")
	ErrSlugTaken     = errors.New("this link is already taken, pick another one")
	ErrTitleRequired = errors.New("title is required")
	ErrPhotoRequired = errors.New("a photo is required")
)
