package constants

const (
	InfoPath     = "/api/info"
	DownloadPath = "/api/download"
	// DownloadFileParam is the query parameter naming the file to download.
	DownloadFileParam = "file"
)

// Share page phrases.
const (
	EmptyPlaceholder = "just air. and maybe some dreams."
	ErrorPrefix      = "Uh-oh, something went wrong! "
	FallbackReason   = "the server seems to be taking a break"
	LoadingPrompt    = "looking around..."
	PageTitle        = "raindrop"
)

const (
	MaxSnippetSize      = 1 << 20 // 1 MiB
	DefaultDownloadsTop = 100
)
