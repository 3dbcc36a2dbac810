package data

import "errors"

var (
	ErrUnknownEnemyType  = errors.New("unknown enemy type")
	ErrMissingDataFile   = errors.New("data file not found")
	ErrInvalidDataFormat = errors.New("invalid data format")
	ErrCorruptedData     = errors.New("corrupted data file")
	ErrItemNotInCatalog  = errors.New("item not in catalog")
	ErrQuestNotInCatalog = errors.New("quest not in catalog")
)
