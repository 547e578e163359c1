package config

const (
	// DefaultEnvFile is loaded before reading environment fallbacks
	DefaultEnvFile = ".env"
	// DefaultCaptureURL is where the external renderer serves captures
	DefaultCaptureURL = "http://localhost:8080"

	// EnvSetName selects a single test set when --set-name is not given
	EnvSetName = "SETRUNNER_SET_NAME"
	// EnvCaseName selects a single test case when --case-name is not given
	EnvCaseName = "SETRUNNER_CASE_NAME"
	// EnvCaptureURL overrides DefaultCaptureURL
	EnvCaptureURL = "SETRUNNER_CAPTURE_URL"
)
