package instance

import "os"

// GetID identifies the running replica. TGSHOP_INSTANCE_ID wins, then the
// platform dyno name, then the hostname.
func GetID() string {
	if id := os.Getenv("TGSHOP_INSTANCE_ID"); id != "" {
		return id
	}
	if dyno := os.Getenv("DYNO"); dyno != "" {
		return dyno
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
