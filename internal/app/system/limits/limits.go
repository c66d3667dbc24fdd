// internal/app/system/limits/limits.go
package limits

// Request body size limits for the case forms.
const (
	// MaxCaseFormSize caps the editor form without attachments.
	MaxCaseFormSize = 1 << 20 // 1 MB

	// MaxCommentSize caps a comment submission.
	MaxCommentSize = 64 << 10 // 64 KB

	// MaxReasonSize caps a rejection reason submission.
	MaxReasonSize = 16 << 10 // 16 KB
)

// Attachment defaults. Both can be overridden from config.
const (
	DefaultMaxFiles  = 5
	DefaultMaxSizeMB = 25
)

// MultipartBudget returns the largest editor request to accept when up to
// maxFiles attachments of maxBytes each are posted with the form.
func MultipartBudget(maxFiles int, maxBytes int64) int64 {
	return MaxCaseFormSize + int64(maxFiles)*maxBytes
}
