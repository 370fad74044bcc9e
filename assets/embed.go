package assets

import (
	"embed"
	"io/fs"
)

//go:embed puzzles.yaml sql/*.sql
var FS embed.FS

// PuzzlesYAML returns the built-in puzzle table.
func PuzzlesYAML() ([]byte, error) {
	return FS.ReadFile("puzzles.yaml")
}

// Migrations exposes the SQL migration files rooted at sql/.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
