package access

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the access record in a local sqlite file, the default
// for single-host deployments and local development.
type SQLiteStore struct {
	Path string
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{Path: path}
}

func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db %v: %v", s.Path, err.Error())
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS beta_state (key TEXT PRIMARY KEY, value TEXT)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %v", err.Error())
	}
	return db, nil
}

func (s *SQLiteStore) Get(key string) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	value := ""
	err = db.QueryRow("select value from beta_state where key=?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to query key %v: %v", key, err.Error())
	}
	return value, nil
}

func (s *SQLiteStore) Set(key string, value string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		"insert into beta_state(key, value) values(?, ?) on conflict(key) do update set value=excluded.value",
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert key %v: %v", key, err.Error())
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("delete from beta_state where key=?", key)
	if err != nil {
		return fmt.Errorf("failed to delete key %v: %v", key, err.Error())
	}
	return nil
}
