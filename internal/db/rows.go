package db

import (
	"fmt"

	"github.com/udisondev/questchronicles/internal/model"
)

// questRow is one character_quests row.
type questRow struct {
	questID  string
	status   string
	position int
}

// questRows flattens both quest sets; positions keep each set's order.
func questRows(rec model.CharacterRecord) []questRow {
	rows := make([]questRow, 0, len(rec.ActiveQuests)+len(rec.CompletedQuests))
	for i, id := range rec.ActiveQuests {
		rows = append(rows, questRow{questID: id, status: questActive, position: i})
	}
	for i, id := range rec.CompletedQuests {
		rows = append(rows, questRow{questID: id, status: questCompleted, position: i})
	}
	return rows
}

func addQuest(rec *model.CharacterRecord, questID, status string) {
	switch status {
	case questCompleted:
		rec.CompletedQuests = append(rec.CompletedQuests, questID)
	default:
		rec.ActiveQuests = append(rec.ActiveQuests, questID)
	}
}

// restoreRow finishes a record read from SQL and validates it.
func restoreRow(rec model.CharacterRecord, className string) (*model.Character, error) {
	class, err := model.ParseClass(className)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidSaveData, err)
	}
	rec.Class = class
	return model.Restore(rec)
}
