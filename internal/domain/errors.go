package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrNoDocuments       = errors.New("no documents submitted")
	ErrAnalysisNotFound  = errors.New("analysis not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrInsurerNotFound   = errors.New("insurer not found")
	ErrNoInsurers        = errors.New("no insurers configured")
	ErrInvalidRole       = errors.New("unknown view role")
	ErrInvalidAvisFilter = errors.New("unknown avis filter")
	ErrUnreadableFile    = errors.New("file is missing or unreadable")
)
