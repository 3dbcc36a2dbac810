package model

import "errors"

// Character errors.
var (
	ErrInvalidClass      = errors.New("invalid character class")
	ErrInvalidName       = errors.New("invalid character name")
	ErrCharacterDead     = errors.New("character is dead")
	ErrInvalidGoldDelta  = errors.New("gold cannot become negative")
	ErrInvalidExperience = errors.New("experience amount must not be negative")
	ErrInvalidSaveData   = errors.New("invalid save data")
)

// Stat and item errors.
var (
	ErrInvalidStat         = errors.New("invalid stat")
	ErrStatUnderflow       = errors.New("stat would drop below its minimum")
	ErrInvalidEffectFormat = errors.New("invalid effect format")
	ErrInvalidItemType     = errors.New("invalid item type")
	ErrInvalidID           = errors.New("invalid item or quest id")
)

// Inventory and equipment errors.
var (
	ErrInventoryFull         = errors.New("inventory is full")
	ErrItemNotFound          = errors.New("item not found in inventory")
	ErrItemTypeMismatch      = errors.New("item type does not match")
	ErrSlotOccupied          = errors.New("equipment slot is occupied")
	ErrInsufficientResources = errors.New("not enough gold")
)

// Quest log errors.
var (
	ErrQuestAlreadyActive    = errors.New("quest already active")
	ErrQuestAlreadyCompleted = errors.New("quest already completed")
	ErrQuestNotActive        = errors.New("quest is not active")
)
