package v1

// PageInfo is the body of GET /api/info. Error is only set on non-2xx responses.
type PageInfo struct {
	IsEmpty     bool             `json:"isEmpty"`
	Files       []FileDescriptor `json:"files,omitempty"`
	Description string           `json:"description,omitempty"`
	Snippet     string           `json:"snippet,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// FileDescriptor describes one shared file. FileSize is already formatted for display.
type FileDescriptor struct {
	FileName string `json:"fileName"`
	FileSize string `json:"fileSize"`
}

type Download struct {
	FileName  string `json:"file_name"`
	ClientIP  string `json:"client_ip"`
	Ranged    bool   `json:"ranged"`
	CreatedAt uint64 `json:"created_at"`
}
