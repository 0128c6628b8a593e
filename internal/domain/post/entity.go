package post

import "time"

// Type distinguishes questions from answers
type Type string

const (
	TypeQuestion Type = "question"
	TypeAnswer   Type = "answer"
)

// Post is the minimal record the engine resolves events against.
// ParentID is the question id for answers, 0 for questions.
type Post struct {
	ID        int64
	AuthorID  int64
	Type      Type
	ParentID  int64
	Title     string
	CreatedAt time.Time
}
