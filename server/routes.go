package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex, s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	if s.staticDir != "" {
		s.RegisterRouteHandler("GET "+RouteStatic, s.StaticHandler())
	}

	// AUTH
	s.RegisterRouteFunc(s.api(http.MethodPost, RouteUsersRegister), s.RegisterHandler())
	s.RegisterRouteFunc(s.api(http.MethodPost, RouteAuthLogin), s.LoginHandler())
	s.RegisterRouteHandler(s.api(http.MethodPost, RouteAuthLogout), ChainMiddleware(s.LogoutHandler(), s.RequireAuth()))

	// OWN PROFILE
	s.RegisterRouteHandler(s.api(http.MethodGet, RouteUsersMe), ChainMiddleware(s.MeHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodPut, RouteUsersMe), ChainMiddleware(s.UpdateMeHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodPatch, RouteUsersMe), ChainMiddleware(s.UpdateMeHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodPost, RouteUsersMePicture), ChainMiddleware(s.UploadPictureHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodGet, RouteUsersMeInstruments), ChainMiddleware(s.MyInstrumentsHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodPut, RouteUsersMeInstruments), ChainMiddleware(s.SetMyInstrumentsHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodGet, RouteUsersMeGenres), ChainMiddleware(s.MyGenresHandler(), s.RequireAuth()))
	s.RegisterRouteHandler(s.api(http.MethodPut, RouteUsersMeGenres), ChainMiddleware(s.SetMyGenresHandler(), s.RequireAuth()))

	// PUBLIC
	s.RegisterRouteFunc(s.api(http.MethodGet, RouteUsersProfile), s.PublicProfileHandler())
	s.RegisterRouteFunc(s.api(http.MethodGet, RouteInstruments), s.ListInstrumentsHandler())
	s.RegisterRouteFunc(s.api(http.MethodGet, RouteGenres), s.ListGenresHandler())

	s.RegisterRouteFunc("/", s.NotFoundHandler())
}
