package user

import "errors"

var ErrInvalidID = errors.New("user id must be set")
