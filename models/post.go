package models

// Post is a short text note owned by the user whose name is stored in Author.
type Post struct {
	ID      int     `json:"id"`
	Content string  `json:"content"`
	File    *string `json:"file"` // nil until an upload succeeds
	Author  string  `json:"author"`
}
