package config

import "os"

const defaultAPIURL = "http://localhost:8080"

// APIURL returns the base URL for the Facility Control API.
// Override with the FACILITY_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("FACILITY_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}
