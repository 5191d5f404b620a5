package models

// AuthResult is the outcome of a sign-in attempt: either a mapped user or a
// user-facing, localized error message. Raw backend errors never appear here.
type AuthResult struct {
	Success      bool
	ErrorMessage string
	User         *User
}

// Succeed builds a successful result for the given user.
func Succeed(user *User) AuthResult {
	return AuthResult{Success: true, User: user}
}

// Fail builds a failed result carrying a user-facing message.
func Fail(message string) AuthResult {
	return AuthResult{Success: false, ErrorMessage: message}
}
