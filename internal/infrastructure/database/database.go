package database

import (
	"database/sql"
	"fmt"
)

type DBConnection struct {
	DB *sql.DB
}

type DBConnectionDetails struct {
	DriverName string
	ConnStr    string
	Schema     string
}

func NewDBConnection(d *DBConnectionDetails) (*DBConnection, error) {
	db, err := sql.Open(d.DriverName, d.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("database.NewDBConnection: failed to open sql connection: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("database.NewDBConnection: pinged db but got no response: %w", err)
	}

	if _, err = db.Exec(d.Schema); err != nil {
		return nil, fmt.Errorf("database.NewDBConnection: failed to apply schema: %w", err)
	}

	return &DBConnection{DB: db}, nil
}

func (dbConn *DBConnection) Close() error {
	return dbConn.DB.Close()
}
