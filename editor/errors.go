package editor

import "errors"

var (
	ErrUnknownAction    = errors.New("editor: unknown action")
	ErrUnknownEditor    = errors.New("editor: unknown editor")
	ErrMissingField     = errors.New("editor: required field is empty")
	ErrUnsupportedMedia = errors.New("editor: unsupported media")
	ErrMediaTooLarge    = errors.New("editor: media file exceeds the size limit")
	ErrStaleSelection   = errors.New("editor: target is no longer in the document")
	ErrCodeView         = errors.New("editor: action unavailable in code view")
)
