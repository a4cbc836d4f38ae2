package model

import (
	"encoding/base64"
	"fmt"
)

// Upload holds a single file received via a multipart form field
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// ImageAttachment is a preprocessed image ready to be sent to the model API
type ImageAttachment struct {
	MIME string
	Data []byte
}

// DataURL encodes the attachment as a base64 data URL, the format the chat
// completions API expects for inline images
func (a *ImageAttachment) DataURL() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIME, base64.StdEncoding.EncodeToString(a.Data))
}
