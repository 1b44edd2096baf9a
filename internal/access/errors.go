package access

import "errors"

// Denials returned by the Engine. Handlers map them to transport status codes.
var (
	ErrNotAuthenticated  = errors.New("authentication credentials were not provided")
	ErrNotAContributor   = errors.New("you are not a contributor of this project")
	ErrNotOwner          = errors.New("only the author may modify this resource")
	ErrAlreadyMember     = errors.New("user is already a contributor of this project")
	ErrCannotRemoveOwner = errors.New("the project author cannot be removed from the project")
	ErrNotFound          = errors.New("not found")
)
