package repository

import "errors"

// ErrNotFound is returned when a record does not exist or does not
// belong to the caller. GORM implementations translate
// gorm.ErrRecordNotFound into this so handlers and fakes agree.
var ErrNotFound = errors.New("record not found")
