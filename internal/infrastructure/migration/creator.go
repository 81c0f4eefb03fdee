package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationUpTemplate = `-- Migration: {{.Name}} ({{.Dialect}})
-- Created: {{.Timestamp}}
-- Description: {{.Description}}

-- Write your UP migration SQL here

`

const migrationDownTemplate = `-- Migration: {{.Name}} ({{.Dialect}}, rollback)
-- Created: {{.Timestamp}}
-- Description: Rollback for {{.Description}}

-- Write your DOWN migration SQL here

`

// Dialects lists the directories every migration must exist in
var Dialects = []string{DriverSQLite, DriverPostgres}

// MigrationFile represents one up/down pair in a single dialect directory
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Dialect     string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration creates the next sequential migration pair in every
// dialect directory below rootDir
func CreateMigration(rootDir, name, description string) ([]*MigrationFile, error) {
	safe := sanitizeName(name)
	if safe == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}

	next, err := nextVersion(rootDir)
	if err != nil {
		return nil, err
	}
	version := fmt.Sprintf("%06d", next)
	timestamp := time.Now().Format(time.RFC3339)

	created := make([]*MigrationFile, 0, len(Dialects))
	for _, dialect := range Dialects {
		dir := filepath.Join(rootDir, dialect)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			removeCreated(created)
			return nil, fmt.Errorf("failed to create migrations directory: %w", err)
		}

		baseName := version + "_" + safe
		mf := &MigrationFile{
			Version:     version,
			Name:        name,
			Description: description,
			Dialect:     dialect,
			Timestamp:   timestamp,
			UpPath:      filepath.Join(dir, baseName+".up.sql"),
			DownPath:    filepath.Join(dir, baseName+".down.sql"),
		}

		if err := createMigrationFile(mf.UpPath, migrationUpTemplate, mf); err != nil {
			removeCreated(created)
			return nil, fmt.Errorf("failed to create up migration: %w", err)
		}
		if err := createMigrationFile(mf.DownPath, migrationDownTemplate, mf); err != nil {
			_ = os.Remove(mf.UpPath)
			removeCreated(created)
			return nil, fmt.Errorf("failed to create down migration: %w", err)
		}
		created = append(created, mf)
	}

	return created, nil
}

func removeCreated(files []*MigrationFile) {
	for _, mf := range files {
		_ = os.Remove(mf.UpPath)
		_ = os.Remove(mf.DownPath)
	}
}

// nextVersion returns one past the highest version found in any dialect
// directory
func nextVersion(rootDir string) (int, error) {
	highest := 0
	for _, dialect := range Dialects {
		names, err := ListMigrations(filepath.Join(rootDir, dialect))
		if err != nil {
			return 0, err
		}
		for _, n := range names {
			prefix, _, _ := strings.Cut(n, "_")
			v, err := strconv.Atoi(prefix)
			if err != nil {
				continue
			}
			if v > highest {
				highest = v
			}
		}
	}
	return highest + 1, nil
}

func createMigrationFile(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// sanitizeName converts a migration name to a lower snake_case file name
func sanitizeName(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			if s := b.String(); s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the sorted base names of the up migrations in dir
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok && base != "" {
			names = append(names, base)
		}
	}
	sort.Strings(names)
	return names, nil
}
