// Package workflow holds the publication rules for articles: which state
// transitions are legal, who may trigger them, and what a draft needs
// before it can be created or sent to review.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"amazonia/internal/models"
)

const (
	MinContentLength = 50
	MaxImages        = 5
)

var (
	ErrNotAuthor         = errors.New("only the author may perform this action")
	ErrNotEditor         = errors.New("only an editor may perform this action")
	ErrNotEditable       = errors.New("article is not in an editable state")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrInvalidState      = errors.New("unknown article state")
)

// ValidationError reports every submission requirement the article misses.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid article: " + strings.Join(e.Problems, "; ")
}

// Editable reports whether the author may still change or delete the
// article. Once an article is pending review or published, only editors
// act on it.
func Editable(state models.ArticleState) bool {
	return state == models.StateDraft || state == models.StateRejected
}

// ValidateContent checks the creation/submission invariant: non-empty
// title and subtitle, body of at least 50 characters, a category and
// 1 to 5 images.
func ValidateContent(a *models.Article) error {
	var problems []string

	if strings.TrimSpace(a.Title) == "" {
		problems = append(problems, "titulo is required")
	}
	if strings.TrimSpace(a.Subtitle) == "" {
		problems = append(problems, "subtitulo is required")
	}
	if len([]rune(a.Content)) < MinContentLength {
		problems = append(problems, fmt.Sprintf("contenido must be at least %d characters", MinContentLength))
	}
	if a.CategoryID == "" {
		problems = append(problems, "categoriaId is required")
	}
	if len(a.Images) == 0 {
		problems = append(problems, "at least one image is required")
	}
	if len(a.Images) > MaxImages {
		problems = append(problems, fmt.Sprintf("at most %d images are allowed", MaxImages))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// CanSubmit decides whether actorUID may send the article to review
// (Borrador|Rechazado -> Pendiente). The submission precondition is the
// same content invariant as creation.
func CanSubmit(a *models.Article, actorUID string) error {
	if a.AuthorUID != actorUID {
		return ErrNotAuthor
	}
	if !Editable(a.State) {
		return fmt.Errorf("%w: cannot submit from %q", ErrInvalidTransition, a.State)
	}
	return ValidateContent(a)
}

// CanApprove decides whether the actor may publish the article
// (Pendiente -> Publicado).
func CanApprove(a *models.Article, actor *models.User) error {
	if actor.Role != models.RoleEditor {
		return ErrNotEditor
	}
	if a.State != models.StatePending {
		return fmt.Errorf("%w: cannot approve from %q", ErrInvalidTransition, a.State)
	}
	return nil
}

// CanReject decides whether the actor may reject the article
// (Pendiente -> Rechazado).
func CanReject(a *models.Article, actor *models.User) error {
	if actor.Role != models.RoleEditor {
		return ErrNotEditor
	}
	if a.State != models.StatePending {
		return fmt.Errorf("%w: cannot reject from %q", ErrInvalidTransition, a.State)
	}
	return nil
}

// CanOverride decides whether the actor may set an arbitrary state on the
// article. This is the administrative reset: editors only, any target
// state that exists.
func CanOverride(target models.ArticleState, actor *models.User) error {
	if actor.Role != models.RoleEditor {
		return ErrNotEditor
	}
	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidState, target)
	}
	return nil
}

// CanDelete decides whether the actor may permanently remove the article.
// Authors may delete their own article while it is still editable;
// editors may delete anything.
func CanDelete(a *models.Article, actor *models.User) error {
	if actor.Role == models.RoleEditor {
		return nil
	}
	if a.AuthorUID != actor.UID {
		return ErrNotAuthor
	}
	if !Editable(a.State) {
		return ErrNotEditable
	}
	return nil
}
