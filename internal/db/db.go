package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open открывает SQLite и создаёт таблицы. DSN вида
// "file:letibot?mode=memory&cache=shared" держит базу в памяти процесса.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite: %w", err)
	}
	// Общая in-memory база живёт, пока открыто хотя бы одно соединение.
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxIdleTime(0)

	if err := createTables(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func createTables(conn *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := conn.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS user_groups (
            telegram_id INTEGER PRIMARY KEY,
            group_number TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы user_groups: %w", err)
	}
	return nil
}
