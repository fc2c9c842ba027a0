package private

// SharedFile is a regular file offered for download.
type SharedFile struct {
	Name string
	Size uint64
	Path string
}

// SharedContent is everything currently shared by this server.
type SharedContent struct {
	Message string
	Snippet string
	Files   []SharedFile

	// paths maps a file name to its location on disk.
	paths map[string]string
}

func NewSharedContent(message string) *SharedContent {
	return &SharedContent{
		Message: message,
		Files:   []SharedFile{},
		paths:   make(map[string]string),
	}
}

// AddFile appends f unless a file with the same name is already shared.
func (c *SharedContent) AddFile(f SharedFile) bool {
	if c.paths == nil {
		c.paths = make(map[string]string)
	}
	if _, exists := c.paths[f.Name]; exists {
		return false
	}

	c.Files = append(c.Files, f)
	c.paths[f.Name] = f.Path
	return true
}

// Lookup returns the on-disk path of the shared file called name.
func (c *SharedContent) Lookup(name string) (string, bool) {
	path, ok := c.paths[name]
	return path, ok
}

func (c *SharedContent) IsEmpty() bool {
	return len(c.Files) == 0 && c.Message == "" && c.Snippet == ""
}
