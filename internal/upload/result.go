package upload

import "fmt"

// Result is the normalized outcome of relaying one file to a provider.
// Exactly one variant is populated: on success the link fields are set,
// on failure only Error carries information. Callers branch on Success.
type Result struct {
	Success      bool   `json:"success"`
	DirectLink   string `json:"direct_link,omitempty"`
	FileID       string `json:"file_id,omitempty"`
	FileName     string `json:"file_name,omitempty"`
	Size         int64  `json:"size,omitempty"`
	DownloadPage string `json:"download_page,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Failure returns a failed Result carrying msg.
func Failure(msg string) *Result {
	return &Result{Error: msg}
}

// Failuref returns a failed Result with a formatted message.
func Failuref(format string, args ...any) *Result {
	return &Result{Error: fmt.Sprintf(format, args...)}
}
