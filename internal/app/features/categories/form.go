package categories

import (
	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
)

type categoryForm struct {
	Name      string   `schema:"name" validate:"required,max=80" label:"Name"`
	Providers []string `schema:"providers" validate:"dive,numeric" label:"Providers"`
}

func (f *categoryForm) Check(up formutil.Uploads, editing bool) error {
	return nil
}

// Payload sends providers as a JSON array even when one is selected.
func (f *categoryForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("name", f.Name)
	for _, id := range f.Providers {
		body.Set("providers[]", id)
	}
	return body
}

// Selected reports whether provider id is assigned, for the template.
func (f categoryForm) Selected(id string) bool {
	for _, p := range f.Providers {
		if p == id {
			return true
		}
	}
	return false
}
