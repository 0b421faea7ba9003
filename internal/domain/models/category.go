// internal/domain/models/category.go
package models

// Category groups providers.
type Category struct {
	ID        string     `src:"id"`
	Name      string     `src:"name|title" default:"Untitled"`
	Providers []Provider `src:"providers" default:"[]"`
}

// ProviderNames lists the names of the category's providers.
func (c Category) ProviderNames() []string {
	out := make([]string, 0, len(c.Providers))
	for _, p := range c.Providers {
		out = append(out, p.Name)
	}
	return out
}
