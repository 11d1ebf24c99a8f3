package user

import "regexp"

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9@.+\-_]+$`)

const (
	maxUsernameLen = 150
	minPasswordLen = 8
)

// ValidateRegistration checks a registration form and returns one
// message per problem, in display order. An empty slice means the form
// is acceptable; uniqueness is still checked at insert time.
func ValidateRegistration(username, password, confirm string) []string {
	var problems []string

	switch {
	case username == "":
		problems = append(problems, "Please enter a username.")
	case len(username) > maxUsernameLen:
		problems = append(problems, "Username must be 150 characters or fewer.")
	case !usernameRe.MatchString(username):
		problems = append(problems, "Use only letters, numbers, and @/./+/-/_.")
	}

	switch {
	case password == "":
		problems = append(problems, "Please enter a password.")
	case len(password) < minPasswordLen:
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}

	if password != "" && password != confirm {
		problems = append(problems, "The two password fields didn't match.")
	}

	return problems
}
