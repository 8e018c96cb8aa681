package access

import (
	"stlouis-middleware/config"

	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
)

// PostgresStore keeps the access record in postgres for deployments where
// the middleware runs on more than one host. Connections are opened per
// call; the gate's traffic is a handful of reads per page load.
type PostgresStore struct {
	conf config.Storage
}

func NewPostgresStore(conf config.Storage) *PostgresStore {
	return &PostgresStore{conf: conf}
}

func (s *PostgresStore) connect() (*pgx.Conn, error) {
	connStr := fmt.Sprintf(
		"postgres://%v:%v@%v:%v/%v?%v",
		s.conf.PostgresUser,
		s.conf.PostgresPass,
		s.conf.PostgresHost,
		s.conf.PostgresPort,
		s.conf.PostgresDBName,
		s.conf.PostgresOptions,
	)

	// https://github.com/jackc/pgx#example-usage
	conn, err := pgx.Connect(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err.Error())
	}

	_, err = conn.Exec(
		context.Background(),
		"CREATE TABLE IF NOT EXISTS beta_state (key VARCHAR ( 128 ) PRIMARY KEY, value TEXT)",
	)
	if err != nil {
		conn.Close(context.Background())
		return nil, fmt.Errorf("failed to create table: %v", err.Error())
	}
	return conn, nil
}

func (s *PostgresStore) Get(key string) (string, error) {
	conn, err := s.connect()
	if err != nil {
		return "", err
	}
	defer conn.Close(context.Background())

	value := ""
	err = conn.QueryRow(
		context.Background(),
		"select value from beta_state where key=$1",
		key,
	).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to query key %v: %v", key, err.Error())
	}
	return value, nil
}

func (s *PostgresStore) Set(key string, value string) error {
	conn, err := s.connect()
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(
		context.Background(),
		"insert into beta_state(key, value) values($1, $2) on conflict (key) do update set value = EXCLUDED.value",
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert key %v: %v", key, err.Error())
	}
	return nil
}

func (s *PostgresStore) Remove(key string) error {
	conn, err := s.connect()
	if err != nil {
		return err
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(
		context.Background(),
		"delete from beta_state where key=$1",
		key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete key %v: %v", key, err.Error())
	}
	return nil
}
