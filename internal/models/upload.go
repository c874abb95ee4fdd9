package models

// SignedURLRequest тело POST /api/r2-url.
type SignedURLRequest struct {
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType" validate:"required"`
}

// SignedURLResponse ответ POST /api/r2-url.
type SignedURLResponse struct {
	UploadURL string `json:"uploadURL,omitempty"`
	Key       string `json:"key,omitempty"`
	Error     string `json:"error,omitempty"`
}

// UploadResponse ответ POST /api/upload.
type UploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UploadJob состояние загрузки одного файла. Живёт, пока форма не отправлена или не отменена.
type UploadJob struct {
	FileName  string
	Folder    string
	Progress  int
	ResultURL string
	Err       error
}
