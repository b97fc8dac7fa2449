package plans

import (
	"errors"
	"regexp"
	"strings"
)

/*
	Plan slug helpers
	-----------------
	- Responsible ONLY for:
	  • generating slugs from plan names
	  • validating admin-supplied slugs
	- Uniqueness lives at the store/DB layer, not here
*/

var (
	slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

var ErrInvalidSlug = errors.New("slug must be lowercase letters, digits and single dashes")

// ValidateSlug checks the shape of an admin-supplied slug.
// Example of valid slugs: "starter", "pro-yearly-2026".
func ValidateSlug(slug string) error {
	if !slugShape.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// MakeSlug derives a URL-safe slug from a plan name.
// Example: "Starter Plan" -> "starter-plan"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "plan"
	}
	return base
}
