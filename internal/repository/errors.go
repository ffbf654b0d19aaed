package repository

import "errors"

// ErrNotFound запись не найдена или уже удалена
var ErrNotFound = errors.New("record not found")
