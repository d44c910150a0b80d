package model

// AppError is the error payload returned by the subscription server and
// carried by every typed error of the conversion pipeline.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage"`

	Path    string `json:"path,omitempty"`    // subscription path, when known
	Line    int    `json:"line,omitempty"`    // 1-based; 0 means "not set"
	Snippet string `json:"snippet,omitempty"` // truncated to 200 bytes
	Hint    string `json:"hint,omitempty"`
}

type ErrorResponse struct {
	Error AppError `json:"error"`
}
