package service

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrForbidden         = errors.New("you don't have permission to access this resource")
	ErrUploadsClosed     = errors.New("this event is not accepting uploads")
	ErrEventLimitReached = errors.New("event limit reached, purchase a package to create more events")
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrFileTooLarge      = errors.New("file size too large")
)
