package fixtures_test

import (
	"testing"
	"unicode/utf8"

	"content-api/internal/domain/entity"
	"content-api/tests/fixtures"
)

func TestGenerateText(t *testing.T) {
	for _, n := range []int{0, 1, 5, 10, 200, 1000, 1001} {
		got := fixtures.GenerateText(n)
		if utf8.RuneCountInString(got) != n {
			t.Errorf("GenerateText(%d) returned %d characters", n, utf8.RuneCountInString(got))
		}
	}
}

func TestNewTestArticle_IsValid(t *testing.T) {
	a := fixtures.NewTestArticle()

	if err := entity.ValidateTitle(a.Title); err != nil {
		t.Errorf("default title invalid: %v", err)
	}
	if err := entity.ValidateDescription(a.Description); err != nil {
		t.Errorf("default description invalid: %v", err)
	}
	if err := entity.ValidateArticleType(a.Type); err != nil {
		t.Errorf("default type invalid: %v", err)
	}
}

func TestNewTestArticle_Options(t *testing.T) {
	cat := entity.Category{ID: "c1", Name: "go"}
	a := fixtures.NewTestArticle(
		fixtures.WithID("a1"),
		fixtures.WithTitle("Custom title"),
		fixtures.WithType(entity.ArticleTypeShort),
		fixtures.WithCategories(cat),
	)

	if a.ID != "a1" || a.Title != "Custom title" || a.Type != entity.ArticleTypeShort {
		t.Errorf("options not applied: %+v", a)
	}
	if len(a.Categories) != 1 || a.Categories[0].ID != "c1" {
		t.Errorf("categories not applied: %+v", a.Categories)
	}
}
