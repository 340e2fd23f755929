package drive

// File is a search result entry projected to the two requested fields.
type File struct {
	ID   string
	Name string
}

// fileResource mirrors one entry of the files.list response JSON.
// Unexported — callers only see File.
type fileResource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// fileListResponse mirrors the files.list response envelope.
// NextPageToken is decoded but unused: search is a single-page call.
type fileListResponse struct {
	NextPageToken string         `json:"nextPageToken"`
	Files         []fileResource `json:"files"`
}
