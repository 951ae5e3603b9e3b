package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed temas_palabras.csv sql/*.sql
var FS embed.FS

// DefaultCatalog opens the built-in topic/word list (CSV).
func DefaultCatalog() (io.ReadCloser, error) {
	return FS.Open("temas_palabras.csv")
}

// Migrations returns the SQL migration files rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}
