package forms

import (
	"nkeinfinity/internal/apiclient"
	"nkeinfinity/internal/validate"
)

// Upload is a file picked in a form, held in memory until submit.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

func (u Upload) Size() int64 { return int64(len(u.Data)) }

func (u Upload) check() validate.File {
	return validate.File{Name: u.Name, ContentType: u.ContentType, Size: u.Size()}
}

func (u Upload) file() apiclient.File {
	return apiclient.File{Name: u.Name, ContentType: u.ContentType, Data: u.Data}
}
