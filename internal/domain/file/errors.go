package file

import "errors"

var ErrNotFound = errors.New("file not found")
