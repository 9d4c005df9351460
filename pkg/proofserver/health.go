package proofserver

import (
	"fmt"
	"net/http"
	"time"
)

// healthTimeout keeps the probe snappy; a proof server that cannot answer
// within this window is treated as unreachable.
const healthTimeout = 2 * time.Second

// ProbeHealth performs a GET against the proof server's health endpoint and
// reports whether it answered with a 2xx status.
func ProbeHealth(port int) bool {
	client := &http.Client{Timeout: healthTimeout}

	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/health", port))
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// WaitHealthy polls the health endpoint until it answers or the deadline
// passes. Used after an auto-start to give the container time to come up.
func WaitHealthy(port int, deadline time.Duration) bool {
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if ProbeHealth(port) {
			return true
		}
		time.Sleep(500 * time.Millisecond)
	}
	return false
}
