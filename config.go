package komfort

import "time"

/*
shared constants for the admin process:
- document title branding used by the route table
- operational limits and timeouts used by the ui server
*/

const (
	AppName = "Комфорт"

	// DefaultPageTitle is used for routes that don't declare a title
	DefaultPageTitle = "Система"

	// APIPathPrefix is the path prefix of every backend resource
	APIPathPrefix = "/api"

	ServerShutdownTimeout = 10 * time.Second
	RequestTimeout        = 60 * time.Second

	DefaultMaxFormSize     = 64 * 1024 // 64KB
	MaxAPIProxyRequestSize = 1024 * 1024
	CORSMaxAgeInSeconds    = 300
)

// DocumentTitle returns the browser title for a page
func DocumentTitle(pageTitle string) string {
	if pageTitle == "" {
		pageTitle = DefaultPageTitle
	}
	return AppName + " — " + pageTitle
}
