package registry

// dirNotFoundError signals a missing library root so the HTTP layer can
// return 503 instead of 500.
type dirNotFoundError struct{ dir string }

func (e dirNotFoundError) Error() string { return "lora directory not found: " + e.dir }

// IsDirNotFound reports whether err indicates a missing library root.
func IsDirNotFound(err error) bool {
	_, ok := err.(dirNotFoundError)
	return ok
}

// invalidRequestError signals a malformed pool request (400).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return "invalid pool request: " + e.msg }

// IsInvalidRequest reports whether err was caused by a malformed request.
func IsInvalidRequest(err error) bool {
	_, ok := err.(invalidRequestError)
	return ok
}
