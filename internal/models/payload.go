package models

import "encoding/base64"

const MIMETypeJPEG = "image/jpeg"

// InlineImagePayload is a base64-encoded JPEG of the resume's first page,
// ready to be attached to a multimodal prompt.
type InlineImagePayload struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

func NewJPEGPayload(jpegBytes []byte) *InlineImagePayload {
	return &InlineImagePayload{
		MIMEType: MIMETypeJPEG,
		Data:     base64.StdEncoding.EncodeToString(jpegBytes),
	}
}

// Bytes decodes the payload back to raw image bytes.
func (p *InlineImagePayload) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.Data)
}
