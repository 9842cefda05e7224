package content

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases the title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug appends -2, -3, ... until the slug is free in the collection.
func (s *DefaultContentService) uniqueSlug(ctx context.Context, collection, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		return "", &ValidationError{Field: "title", Message: "must contain at least one letter or digit"}
	}

	slug := base
	for n := 2; ; n++ {
		taken, err := s.Repo.SlugExists(ctx, collection, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
