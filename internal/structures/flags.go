package structures

import "net/http"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	IngestFile string
}

type Route struct {
	Url     string
	Handler http.Handler
}
