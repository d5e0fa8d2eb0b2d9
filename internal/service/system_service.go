package service

import (
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/tradejournal/Trading-Journal-Backend/internal/database"
)

// AppVersion is the reported application version.
const AppVersion = "1.0.0"

// SystemService handles system-level operations: health and version checks.
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService with the provided database connection.
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{db: db}
}

// CheckHealth verifies database connectivity.
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// VersionInfo reports application and schema versions.
type VersionInfo struct {
	AppVersion string `json:"appVersion"`
	DbVersion  int64  `json:"dbVersion"`
}

// CheckVersion returns the application version and the applied migration version.
func (s *SystemService) CheckVersion() (VersionInfo, error) {
	dbVersion, err := goose.GetDBVersion(s.db)
	if err != nil {
		return VersionInfo{}, err
	}
	return VersionInfo{AppVersion: AppVersion, DbVersion: dbVersion}, nil
}
