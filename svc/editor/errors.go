package editor

import "errors"

var (
	ErrSelectionNotFound = errors.New("editor: selected text not found in template")
	ErrImageNotFound     = errors.New("editor: image not found in template")
	ErrSectionNotFound   = errors.New("editor: section not found")
	ErrVariableNotFound  = errors.New("editor: variable not found")
)
