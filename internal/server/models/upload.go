package models

// UploadState tracks one file of an upload batch. States move
// pending → uploading → completed|error. There are no intermediate
// progress percentages; the state is the whole story.
type UploadState string

const (
	UploadPending   UploadState = "pending"
	UploadUploading UploadState = "uploading"
	UploadCompleted UploadState = "completed"
	UploadError     UploadState = "error"
)

// UploadTask is the transient, per-file outcome of an upload batch. It is
// returned to the caller and never persisted.
type UploadTask struct {
	FileName   string      `json:"file_name"`
	State      UploadState `json:"state"`
	Submission *Submission `json:"submission,omitempty"`
	Error      string      `json:"error,omitempty"`
}
