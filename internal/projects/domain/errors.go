package domain

import "errors"

var (
	ErrDuplicateID        = errors.New("id already exists")
	ErrInvalidNodeType    = errors.New("invalid diagram node type")
	ErrUnknownSection     = errors.New("unknown section")
	ErrInvalidProject     = errors.New("invalid project")
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrCorruptDocument    = errors.New("corrupt project document")
)
