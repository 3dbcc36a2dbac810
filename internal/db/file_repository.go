package db

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/questchronicles/internal/model"
)

// SaveFileSuffix is appended to the character name to form the save file name.
const SaveFileSuffix = "_save.txt"

const checksumKey = "CHECKSUM"

// Save file keys in write order.
const (
	keyName            = "NAME"
	keyClass           = "CLASS"
	keyLevel           = "LEVEL"
	keyHealth          = "HEALTH"
	keyMaxHealth       = "MAX_HEALTH"
	keyStrength        = "STRENGTH"
	keyMagic           = "MAGIC"
	keyExperience      = "EXPERIENCE"
	keyGold            = "GOLD"
	keyInventory       = "INVENTORY"
	keyActiveQuests    = "ACTIVE_QUESTS"
	keyCompletedQuests = "COMPLETED_QUESTS"
	keyEquippedWeapon  = "EQUIPPED_WEAPON"
	keyEquippedArmor   = "EQUIPPED_ARMOR"
)

// FileRepository stores one plain-text save file per character:
//
//	NAME: Aria
//	CLASS: Mage
//	LEVEL: 3
//	...
//	CHECKSUM: <blake2b-256 of the lines above>
//
// Lists are comma-separated. EQUIPPED_* and CHECKSUM are optional on load.
type FileRepository struct {
	dir string
}

// NewFileRepository creates the save directory if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save dir %s: %w", dir, err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(name string) string {
	return filepath.Join(r.dir, name+SaveFileSuffix)
}

// Save writes the save file through a temp file and rename.
func (r *FileRepository) Save(_ context.Context, c *model.Character) error {
	if err := checkName(c.Name()); err != nil {
		return err
	}

	content := EncodeSave(c.Record())

	tmp, err := os.CreateTemp(r.dir, "."+c.Name()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp save for %s: %w", c.Name(), err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save for %s: %w", c.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing save for %s: %w", c.Name(), err)
	}
	if err := os.Rename(tmpName, r.path(c.Name())); err != nil {
		return fmt.Errorf("replacing save for %s: %w", c.Name(), err)
	}

	slog.Debug("character saved", "character", c.Name(), "path", r.path(c.Name()))
	return nil
}

// Load reads and validates a save file.
func (r *FileRepository) Load(_ context.Context, name string) (*model.Character, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrSaveFileCorrupted, r.path(name), err)
	}

	rec, err := DecodeSave(raw)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return model.Restore(rec)
}

// List returns the names of all saves, sorted. A missing directory is empty.
func (r *FileRepository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing saves in %s: %w", r.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), SaveFileSuffix); ok && name != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a save file.
func (r *FileRepository) Delete(_ context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(r.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
		}
		return fmt.Errorf("deleting save %s: %w", name, err)
	}
	slog.Info("character deleted", "character", name)
	return nil
}

// Close is a no-op for file storage.
func (r *FileRepository) Close() error {
	return nil
}

// EncodeSave renders rec in save file format, checksum line included.
func EncodeSave(rec model.CharacterRecord) []byte {
	var b bytes.Buffer
	line := func(key, value string) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte('\n')
	}

	line(keyName, rec.Name)
	line(keyClass, rec.Class.String())
	line(keyLevel, strconv.Itoa(rec.Level))
	line(keyHealth, strconv.Itoa(rec.Health))
	line(keyMaxHealth, strconv.Itoa(rec.MaxHealth))
	line(keyStrength, strconv.Itoa(rec.Strength))
	line(keyMagic, strconv.Itoa(rec.Magic))
	line(keyExperience, strconv.Itoa(rec.Experience))
	line(keyGold, strconv.Itoa(rec.Gold))
	line(keyInventory, joinList(rec.Inventory))
	line(keyActiveQuests, joinList(rec.ActiveQuests))
	line(keyCompletedQuests, joinList(rec.CompletedQuests))
	line(keyEquippedWeapon, rec.EquippedWeapon)
	line(keyEquippedArmor, rec.EquippedArmor)

	line(checksumKey, checksum(b.Bytes()))
	return b.Bytes()
}

// DecodeSave parses save file content into a record. The record is not
// validated; model.Restore does that.
func DecodeSave(raw []byte) (model.CharacterRecord, error) {
	body, sum, hasSum := splitChecksum(raw)
	if hasSum && sum != checksum(body) {
		return model.CharacterRecord{}, fmt.Errorf("%w: checksum mismatch", ErrSaveFileCorrupted)
	}

	fields := make(map[string]string, 16)
	sc := bufio.NewScanner(bytes.NewReader(body))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return model.CharacterRecord{}, fmt.Errorf("%w: line %d has no ':'", model.ErrInvalidSaveData, lineNo)
		}
		fields[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return model.CharacterRecord{}, fmt.Errorf("%w: %v", ErrSaveFileCorrupted, err)
	}

	d := saveDecoder{fields: fields}
	rec := model.CharacterRecord{
		Name:            d.str(keyName),
		Level:           d.num(keyLevel),
		Health:          d.num(keyHealth),
		MaxHealth:       d.num(keyMaxHealth),
		Strength:        d.num(keyStrength),
		Magic:           d.num(keyMagic),
		Experience:      d.num(keyExperience),
		Gold:            d.num(keyGold),
		Inventory:       splitList(d.str(keyInventory)),
		ActiveQuests:    splitList(d.str(keyActiveQuests)),
		CompletedQuests: splitList(d.str(keyCompletedQuests)),
		EquippedWeapon:  fields[keyEquippedWeapon],
		EquippedArmor:   fields[keyEquippedArmor],
	}
	if d.err == nil {
		class, err := model.ParseClass(d.str(keyClass))
		if err != nil {
			d.err = fmt.Errorf("%w: %v", model.ErrInvalidSaveData, err)
		}
		rec.Class = class
	}
	if d.err != nil {
		return model.CharacterRecord{}, d.err
	}
	return rec, nil
}

// saveDecoder keeps the first missing or malformed field error.
type saveDecoder struct {
	fields map[string]string
	err    error
}

func (d *saveDecoder) str(key string) string {
	v, ok := d.fields[key]
	if !ok && d.err == nil {
		d.err = fmt.Errorf("%w: missing field %s", model.ErrInvalidSaveData, key)
	}
	return v
}

func (d *saveDecoder) num(key string) int {
	v := d.str(key)
	if d.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.err = fmt.Errorf("%w: %s is not an integer: %q", model.ErrInvalidSaveData, key, v)
		return 0
	}
	return n
}

func checksum(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// splitChecksum separates a trailing CHECKSUM line from the body it covers.
func splitChecksum(raw []byte) (body []byte, sum string, ok bool) {
	trimmed := bytes.TrimRight(raw, "\r\n")
	idx := bytes.LastIndexByte(trimmed, '\n')
	last := trimmed[idx+1:]

	key, value, found := strings.Cut(string(last), ":")
	if !found || strings.TrimSpace(key) != checksumKey {
		return raw, "", false
	}
	return raw[:idx+1], strings.TrimSpace(value), true
}
