package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/TrailerPack/internal/model"
)

// backupVersion stamps exported files so future format changes can be
// detected on import.
const backupVersion = "1.0.0"

// BackupData is a portable snapshot of everything trailerpack stores
// locally: the app config plus every saved plan.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Plans     []model.Plan    `json:"plans,omitempty"`
}

// ExportAllData writes the config and the given plans as one versioned,
// timestamped JSON snapshot.
func ExportAllData(exportPath string, config model.AppConfig, plans []model.Plan) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Plans:     plans,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a snapshot back. Unversioned files are refused; they
// were not written by ExportAllData.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("backup file has no version field")
	}
	return backup, nil
}
