// internal/app/features/packages/templates.go
package packages

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "packages",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
