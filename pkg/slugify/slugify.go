package slugify

import "github.com/gosimple/slug"

// Make derives a lowercase, transliterated, URL-safe slug from a display
// name. The same input always yields the same slug; uniqueness across rows
// is left to the database constraint.
func Make(name string) string {
	return slug.Make(name)
}
