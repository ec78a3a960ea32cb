package clients

import "time"

const (
	DEFAULT_ANALYSIS_ENDPOINT        = "http://localhost:5000/analyze"
	DEFAULT_ANALYSIS_HEALTH_ENDPOINT = "http://localhost:5000/health"
	HEALTHCHECK_TIMEOUT              = 5 * time.Second
	USER_AGENT                       = "sentiscope-client/1.0 (+https://github.com/spacesedan/sentiscope)"
)
