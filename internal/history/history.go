// Package history persists REPL input lines in a sqlite database under the
// qsh data directory.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Manager struct {
	db *gorm.DB
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Input     string
	Directory string
}

const historySchemaVersion = 1

func NewManager(dbFilePath string) (*Manager, error) {
	dbFileExists := true
	if _, err := os.Stat(dbFilePath); errors.Is(err, os.ErrNotExist) {
		dbFileExists = false
	} else if err != nil {
		return nil, fmt.Errorf("checking history db: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if needsMigration(dbFileExists, db, dbFilePath) {
		if err := db.AutoMigrate(&Entry{}); err != nil {
			return nil, fmt.Errorf("migrating history schema: %w", err)
		}
		if err := writeSchemaVersion(dbFilePath, historySchemaVersion); err != nil {
			return nil, fmt.Errorf("writing history schema version: %w", err)
		}
	}

	return &Manager{db: db}, nil
}

func needsMigration(dbFileExists bool, db *gorm.DB, dbFilePath string) bool {
	if !dbFileExists {
		return true
	}

	versionMatches, err := schemaVersionMatches(dbFilePath)
	if err != nil || !versionMatches {
		return true
	}

	// If the version marker is present but the table is missing, re-run
	// migrations to restore the schema.
	return !db.Migrator().HasTable(&Entry{})
}

func writeSchemaVersion(dbFilePath string, version int) error {
	return os.WriteFile(schemaVersionPath(dbFilePath), []byte(strconv.Itoa(version)), 0644)
}

func schemaVersionMatches(dbFilePath string) (bool, error) {
	data, err := os.ReadFile(schemaVersionPath(dbFilePath))
	if err != nil {
		return false, err
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, err
	}
	if version != historySchemaVersion {
		return false, fmt.Errorf("history schema version mismatch: got %d, want %d", version, historySchemaVersion)
	}
	return true, nil
}

func schemaVersionPath(dbFilePath string) string {
	return filepath.Join(filepath.Dir(dbFilePath), "history_schema_version")
}

// Append records an input line together with the directory it was entered in.
func (m *Manager) Append(input string, directory string) (*Entry, error) {
	entry := Entry{
		Input:     input,
		Directory: directory,
	}

	result := m.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// Recent returns up to limit entries in chronological order (oldest first).
func (m *Manager) Recent(limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	slices.Reverse(entries)
	return entries, nil
}

// RecentInputs returns up to limit input strings, most recent first, for the
// editor's history navigation.
func (m *Manager) RecentInputs(limit int) ([]string, error) {
	var entries []Entry
	result := m.db.Order("id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	inputs := make([]string, 0, len(entries))
	for _, entry := range entries {
		inputs = append(inputs, entry.Input)
	}
	return inputs, nil
}

// Count returns the total number of stored entries.
func (m *Manager) Count() (int64, error) {
	var count int64
	result := m.db.Model(&Entry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Search returns entries containing the given substring, most recent first.
func (m *Manager) Search(query string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("input LIKE ?", "%"+query+"%").
		Order("id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Delete removes a single entry by id.
func (m *Manager) Delete(id uint) error {
	result := m.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

// Reset deletes all history entries.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}
