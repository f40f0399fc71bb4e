package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"hallbook/internal/constants"
	"hallbook/internal/models"
)

// Store persists client preferences (API base URL, selected hall, theme,
// page size) in a small local SQLite database under the config directory.
// The bearer token never lives here; see token.go.
type Store struct {
	path string
	db   *sql.DB
}

// NewStore creates a Store for the given database path. "~" expands to the
// user's home directory.
func NewStore(path string) *Store {
	return &Store{path: expandHome(path)}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// Open creates the config directory and database if needed and seeds
// default settings on first run.
func (s *Store) Open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open settings database: %w", err)
	}
	s.db = db

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to initialize settings table: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.APIBaseURL == "" {
		defaults := models.Settings{
			APIBaseURL: constants.DefaultAPIBaseURL,
			Theme:      "dark",
			PageSize:   constants.BookingPageSize,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to seed default settings: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ConfigDir returns the directory the store lives in, used for log files.
func (s *Store) ConfigDir() string {
	return filepath.Dir(s.path)
}

// GetSettings reads all persisted settings.
func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case "api_base_url":
			settings.APIBaseURL = value
		case "selected_hall":
			settings.SelectedHall = value
		case "theme":
			settings.Theme = value
		case "page_size":
			size, err := strconv.Atoi(value)
			if err != nil {
				return models.Settings{}, fmt.Errorf("parsing page_size: %w", err)
			}
			settings.PageSize = size
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	if settings.PageSize <= 0 {
		settings.PageSize = constants.BookingPageSize
	}
	return settings, nil
}

// SaveSettings upserts all settings.
func (s *Store) SaveSettings(settings models.Settings) error {
	pairs := map[string]string{
		"api_base_url":  settings.APIBaseURL,
		"selected_hall": settings.SelectedHall,
		"theme":         settings.Theme,
		"page_size":     strconv.Itoa(settings.PageSize),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range pairs {
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("saving setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// SetSelectedHall persists the last selected hall so it can be restored on
// the next start.
func (s *Store) SetSelectedHall(hallID string) error {
	settings, err := s.GetSettings()
	if err != nil {
		return err
	}
	settings.SelectedHall = hallID
	return s.SaveSettings(settings)
}
