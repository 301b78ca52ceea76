package relay

// Response is the relay's answer; success is the only field callers rely on.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Attachment is an optional file sent with a multipart submission.
type Attachment struct {
	Field    string // form field name, e.g. "attachment"
	Filename string
	Content  []byte
}
