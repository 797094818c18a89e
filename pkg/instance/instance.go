package instance

import "github.com/angelmondragon/reviewhub-backend/pkg/env"

// GetID identifies the running process in logs: an explicit instance id,
// then the platform dyno name, then "local".
func GetID() string {
	return env.First("local", "REVIEWHUB_INSTANCE_ID", "DYNO")
}
