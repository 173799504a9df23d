package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const upTemplate = `-- {{.Name}} ({{.Timestamp}})
-- {{.Description}}

`

const downTemplate = `-- rollback {{.Name}} ({{.Timestamp}})

`

// MigrationFile describes a scaffolded up/down pair
type MigrationFile struct {
	Version     uint
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

var versionPrefix = regexp.MustCompile(`^(\d+)_`)

// CreateMigration writes the next sequential up/down pair into dir,
// numbered like 000002_add_task_notes.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}
	latest, err := LatestVersion(dir)
	if err != nil {
		return nil, err
	}

	mf := &MigrationFile{
		Version:     latest + 1,
		Name:        slug,
		Description: description,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	base := fmt.Sprintf("%06d_%s", mf.Version, slug)
	mf.UpPath = filepath.Join(dir, base+".up.sql")
	mf.DownPath = filepath.Join(dir, base+".down.sql")

	if err := writeFromTemplate(mf.UpPath, upTemplate, mf); err != nil {
		return nil, err
	}
	if err := writeFromTemplate(mf.DownPath, downTemplate, mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, err
	}
	return mf, nil
}

// LatestVersion returns the highest numeric prefix among *.up.sql files in
// dir, or 0 when there are none.
func LatestVersion(dir string) (uint, error) {
	names, err := ListMigrations(dir)
	if err != nil {
		return 0, err
	}
	var latest uint
	for _, n := range names {
		match := versionPrefix.FindStringSubmatch(n)
		if match == nil {
			continue
		}
		v, err := strconv.ParseUint(match[1], 10, 32)
		if err != nil {
			continue
		}
		if uint(v) > latest {
			latest = uint(v)
		}
	}
	return latest, nil
}

// ListMigrations returns migration base names in dir, sorted
func ListMigrations(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			out = append(out, strings.TrimSuffix(e.Name(), ".up.sql"))
		}
	}
	sort.Strings(out)
	return out, nil
}

func writeFromTemplate(path, tmpl string, data *MigrationFile) error {
	t, err := template.New(filepath.Base(path)).Parse(tmpl)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return t.Execute(f, data)
}

// sanitizeName lowercases name and keeps [a-z0-9] with single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			if s := b.String(); s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
