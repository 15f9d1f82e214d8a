package structures

import "net/http"

// Route is a single registered endpoint. An empty Method accepts every method
// and leaves method checks to the handler.
type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}
