package workflow

import (
	"strings"
	"testing"

	"amazonia/internal/models"

	"github.com/stretchr/testify/assert"
)

func validArticle() *models.Article {
	return &models.Article{
		ID:         "n1",
		Title:      "Dragas en el río Caquetá",
		Subtitle:   "La minería avanza río arriba",
		Content:    strings.Repeat("a", 80),
		CategoryID: "cat1",
		Images:     []string{"/uploads/noticias/u1/1_a_b.jpg"},
		AuthorUID:  "u1",
		State:      models.StateDraft,
	}
}

func TestValidateContent(t *testing.T) {
	assert.NoError(t, ValidateContent(validArticle()))
}

func TestValidateContentBodyLengthBoundary(t *testing.T) {
	a := validArticle()

	a.Content = strings.Repeat("x", 49)
	assert.Error(t, ValidateContent(a), "49 characters must be rejected")

	a.Content = strings.Repeat("x", 50)
	assert.NoError(t, ValidateContent(a), "50 characters must be accepted")
}

func TestValidateContentImageCount(t *testing.T) {
	a := validArticle()

	a.Images = nil
	assert.Error(t, ValidateContent(a), "an article needs at least one image")

	a.Images = make([]string, 5)
	assert.NoError(t, ValidateContent(a), "five images are allowed")

	a.Images = make([]string, 6)
	assert.Error(t, ValidateContent(a), "six images must be rejected")
}

func TestValidateContentRequiredFields(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*models.Article)
	}{
		{"empty title", func(a *models.Article) { a.Title = "  " }},
		{"empty subtitle", func(a *models.Article) { a.Subtitle = "" }},
		{"no category", func(a *models.Article) { a.CategoryID = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := validArticle()
			tc.mutate(a)
			var validation *ValidationError
			assert.ErrorAs(t, ValidateContent(a), &validation)
		})
	}
}

func TestEditable(t *testing.T) {
	assert.True(t, Editable(models.StateDraft))
	assert.True(t, Editable(models.StateRejected))
	assert.False(t, Editable(models.StatePending))
	assert.False(t, Editable(models.StatePublished))
}

func TestCanSubmit(t *testing.T) {
	a := validArticle()
	assert.NoError(t, CanSubmit(a, "u1"))

	a.State = models.StateRejected
	assert.NoError(t, CanSubmit(a, "u1"), "rejected articles can be resubmitted")
}

func TestCanSubmitOnlyByAuthor(t *testing.T) {
	err := CanSubmit(validArticle(), "someone-else")
	assert.ErrorIs(t, err, ErrNotAuthor)
}

func TestCanSubmitOnlyFromEditableState(t *testing.T) {
	a := validArticle()

	a.State = models.StatePending
	assert.ErrorIs(t, CanSubmit(a, "u1"), ErrInvalidTransition)

	a.State = models.StatePublished
	assert.ErrorIs(t, CanSubmit(a, "u1"), ErrInvalidTransition)
}

func TestCanSubmitValidatesContent(t *testing.T) {
	a := validArticle()
	a.Content = "too short"
	var validation *ValidationError
	assert.ErrorAs(t, CanSubmit(a, "u1"), &validation)
}

func TestCanApprove(t *testing.T) {
	editor := &models.User{UID: "e1", Role: models.RoleEditor}
	reporter := &models.User{UID: "u1", Role: models.RoleReporter}

	a := validArticle()
	a.State = models.StatePending

	assert.NoError(t, CanApprove(a, editor))
	assert.ErrorIs(t, CanApprove(a, reporter), ErrNotEditor)

	a.State = models.StateDraft
	assert.ErrorIs(t, CanApprove(a, editor), ErrInvalidTransition)
}

func TestCanReject(t *testing.T) {
	editor := &models.User{UID: "e1", Role: models.RoleEditor}

	a := validArticle()
	a.State = models.StatePending
	assert.NoError(t, CanReject(a, editor))

	a.State = models.StatePublished
	assert.ErrorIs(t, CanReject(a, editor), ErrInvalidTransition)
}

func TestCanOverride(t *testing.T) {
	editor := &models.User{UID: "e1", Role: models.RoleEditor}
	reporter := &models.User{UID: "u1", Role: models.RoleReporter}

	assert.NoError(t, CanOverride(models.StateDraft, editor))
	assert.NoError(t, CanOverride(models.StatePublished, editor))
	assert.ErrorIs(t, CanOverride(models.StateDraft, reporter), ErrNotEditor)
	assert.ErrorIs(t, CanOverride(models.ArticleState("Archivado"), editor), ErrInvalidState)
}

func TestCanDelete(t *testing.T) {
	editor := &models.User{UID: "e1", Role: models.RoleEditor}
	author := &models.User{UID: "u1", Role: models.RoleReporter}
	other := &models.User{UID: "u2", Role: models.RoleReporter}

	a := validArticle()
	assert.NoError(t, CanDelete(a, author), "author deletes own draft")
	assert.ErrorIs(t, CanDelete(a, other), ErrNotAuthor)

	a.State = models.StatePublished
	assert.ErrorIs(t, CanDelete(a, author), ErrNotEditable, "author cannot delete once published")
	assert.NoError(t, CanDelete(a, editor), "editor deletes any state")
}
