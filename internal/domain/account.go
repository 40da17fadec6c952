package domain

import "time"

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type ProgressType string

const (
	ProgressPuzzle ProgressType = "puzzle"
	ProgressQuiz   ProgressType = "quiz"
)

func (t ProgressType) Valid() bool {
	return t == ProgressPuzzle || t == ProgressQuiz
}

type ProgressRecord struct {
	Number      int       `json:"number"`
	Title       string    `json:"title,omitempty"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score,omitempty"`
	Solved      bool      `json:"solved"`
	CompletedAt time.Time `json:"completed_at"`
}

// User is a verified identity as reported by the auth provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
