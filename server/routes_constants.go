package server

// Route path constants. API routes are relative to the configured API prefix.
const (
	// Service routes, outside the API prefix
	RouteIndex  = "/{$}"
	RouteHealth = "/health"
	RouteStatic = "/static/"

	// Auth Routes
	RouteUsersRegister = "/users/register"
	RouteAuthLogin     = "/auth/login"
	RouteAuthLogout    = "/auth/logout"

	// Profile Routes (own account)
	RouteUsersMe            = "/users/me"
	RouteUsersMePicture     = "/users/me/picture"
	RouteUsersMeInstruments = "/users/me/instruments"
	RouteUsersMeGenres      = "/users/me/genres"

	// Public Routes
	RouteUsersProfile = "/users/profile/{id}"
	RouteInstruments  = "/instruments"
	RouteGenres       = "/genres"
)
