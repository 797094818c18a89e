package enums

import "fmt"

// AuthorType identifies who wrote a submission comment.
type AuthorType string

const (
	AuthorTypeUser  AuthorType = "user"
	AuthorTypeAdmin AuthorType = "admin"
)

// IsValid reports whether the author type is recognized.
func (a AuthorType) IsValid() bool {
	return a == AuthorTypeUser || a == AuthorTypeAdmin
}

// ParseAuthorType converts raw input into AuthorType.
func ParseAuthorType(value string) (AuthorType, error) {
	if t := AuthorType(value); t.IsValid() {
		return t, nil
	}
	return "", fmt.Errorf("invalid author type %q", value)
}
