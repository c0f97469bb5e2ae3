package note

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidNote = errors.New("invalid note")

type Note struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Pinned    bool      `json:"pinned,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n Note) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidNote)
	}
	return nil
}
