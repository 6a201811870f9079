package domain

// ChunkSelection is the locked selection made in the fingerprint view. A nil
// ChunkKey selects the whole document.
type ChunkSelection struct {
	DocTitle   string   `json:"docTitle"`
	ChunkKey   *string  `json:"chunkKey"`
	ChunkIndex *int     `json:"chunkIndex"`
	RunIDs     []string `json:"runIds"`
}

func (s ChunkSelection) IsDocument() bool {
	return s.ChunkKey == nil
}

// Selects reports whether the selection targets exactly this chunk.
func (s ChunkSelection) Selects(key string) bool {
	return s.ChunkKey != nil && *s.ChunkKey == key
}
