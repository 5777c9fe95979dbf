package dashboard

import (
	"regexp"
	"strings"
)

// Form holds the submission form fields.
type Form struct {
	Name     string
	Email    string
	Message  string
	Rating   int
	Category string
}

// NewForm returns a form with the default rating and category selected.
func NewForm() Form {
	return Form{Rating: 5, Category: "general"}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateForm mirrors the server's field rules so invalid submissions are
// blocked before any network call. It returns a field → message map; an
// empty map means the form is valid. The server remains the authoritative
// second check.
func ValidateForm(f Form) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = "Name is required"
	} else if len(name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}

	message := strings.TrimSpace(f.Message)
	if message == "" {
		errs["message"] = "Message is required"
	} else if len(message) < 10 {
		errs["message"] = "Message must be at least 10 characters"
	}

	return errs
}
