// internal/domain/models/comment.go
package models

// Comment belongs to exactly one Case; it has no lifecycle of its own.
type Comment struct {
	ID        string `yaml:"id" json:"id"`
	Author    Author `yaml:"author" json:"author"`
	Body      string `yaml:"body" json:"body"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
	Likes     Toggle `yaml:"likes" json:"likes"`
}
