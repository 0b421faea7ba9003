package reels

import (
	"strconv"
	"strings"

	"github.com/dalemusser/couponadmin/internal/app/system/apiclient"
	"github.com/dalemusser/couponadmin/internal/app/system/formutil"
	"github.com/dalemusser/couponadmin/internal/domain/models"
)

type reelForm struct {
	Description string `schema:"description" validate:"required,max=500" label:"Caption"`
}

func (f *reelForm) Check(up formutil.Uploads, editing bool) error {
	return up.Require("file", "Video or image")
}

// Payload tags the upload as a video when its content type says so.
func (f *reelForm) Payload(up formutil.Uploads) any {
	body := &apiclient.Form{}
	body.Set("description", f.Description)
	if file := up.Get("file"); file.Present() {
		part := file.File()
		body.Set("file_type", strconv.Itoa(fileType(part.ContentType)))
		body.Attach(part)
	}
	return body
}

func fileType(contentType string) int {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return models.ReelVideo
	}
	return models.ReelImage
}
