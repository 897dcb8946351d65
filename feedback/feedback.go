// Package feedback is the community board where shoppers rate the app.
package feedback

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"precojusto-backend/catalog"
	"precojusto-backend/models"
)

const (
	// DefaultDelay is how long a submission takes to be published.
	DefaultDelay = time.Second

	anonymousName  = "Você"
	anonymousPhoto = "https://i.pravatar.cc/150?u=me"
	justNow        = "Agora mesmo"
)

// Submission is a new review. Blank name and photo fall back to the
// anonymous author.
type Submission struct {
	UserName  string
	UserPhoto string
	Rating    int
	Comment   string
}

// Board holds the feedback entries, newest first.
type Board struct {
	mu      sync.RWMutex
	entries []models.Feedback
	delay   time.Duration
}

func NewBoard(delay time.Duration, seed []models.Feedback) *Board {
	if delay < 0 {
		delay = 0
	}
	entries := make([]models.Feedback, len(seed))
	copy(entries, seed)
	return &Board{entries: entries, delay: delay}
}

func (b *Board) List() []models.Feedback {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Feedback, len(b.entries))
	copy(out, b.entries)
	return out
}

func validate(sub Submission) error {
	if strings.TrimSpace(sub.Comment) == "" {
		return &catalog.ValidationError{Field: "comment", Message: "comment is required"}
	}
	if sub.Rating < 1 || sub.Rating > 5 {
		return &catalog.ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	return nil
}

// Submit validates sub, waits the publishing delay and prepends the entry.
// A cancelled ctx aborts the submission without publishing it.
func (b *Board) Submit(ctx context.Context, sub Submission) (models.Feedback, error) {
	if err := validate(sub); err != nil {
		return models.Feedback{}, err
	}

	if b.delay > 0 {
		timer := time.NewTimer(b.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return models.Feedback{}, ctx.Err()
		case <-timer.C:
		}
	}

	entry := models.Feedback{
		ID:        "f-" + uuid.NewString(),
		UserName:  strings.TrimSpace(sub.UserName),
		UserPhoto: strings.TrimSpace(sub.UserPhoto),
		Rating:    sub.Rating,
		Comment:   strings.TrimSpace(sub.Comment),
		Date:      justNow,
		Likes:     0,
	}
	if entry.UserName == "" {
		entry.UserName = anonymousName
	}
	if entry.UserPhoto == "" {
		entry.UserPhoto = anonymousPhoto
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append([]models.Feedback{entry}, b.entries...)
	return entry, nil
}

// Like adds one like to the entry.
func (b *Board) Like(id string) (models.Feedback, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.entries {
		if b.entries[i].ID == id {
			b.entries[i].Likes++
			return b.entries[i], nil
		}
	}
	return models.Feedback{}, &catalog.NotFoundError{Kind: "feedback", ID: id}
}

// Seed returns the entries the board starts with.
func Seed() []models.Feedback {
	return []models.Feedback{
		{ID: "f1", UserName: "Maria Silva", Rating: 5, Comment: "Finalmente consigo comparar o preço do leite sem ter que ir em dois mercados diferentes! Economizei R$ 40,00 na última compra.", Date: "Há 2 horas", Likes: 12, UserPhoto: "https://i.pravatar.cc/150?u=maria"},
		{ID: "f2", UserName: "João Pedro", Rating: 4, Comment: "Muito bom, mas seria legal ter mais padarias cadastradas. O scanner do Gmail funcionou perfeitamente.", Date: "Há 1 dia", Likes: 5, UserPhoto: "https://i.pravatar.cc/150?u=joao"},
		{ID: "f3", UserName: "Ana Costa", Rating: 5, Comment: "O Preço Justo virou meu app favorito. O design é lindo e muito fácil de usar.", Date: "Há 3 dias", Likes: 28, UserPhoto: "https://i.pravatar.cc/150?u=ana"},
	}
}
