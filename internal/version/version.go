package version

import "strings"

// Version is set at build time with:
// -ldflags "-X github.com/izzyreal/raincast/internal/version.Version=vX.Y.Z"
var Version = "dev"

// APIVersion is bumped when the /predict or /model_info payloads change shape.
const APIVersion = 1

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// UserAgent is sent by the prediction client.
func UserAgent() string {
	return "raincast/" + Current()
}
