package auth

import "github.com/jrsteele09/mobile-musician-api/users"

// Repos holds all repository dependencies for the AuthenticationService
type Repos struct {
	Users users.UserRepo // Repository for account data
}
