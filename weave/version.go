package weave

// Release of the escrowd state machine. Blocks produced by different major
// versions are not compatible.
const release = "v0.1.0"

// Build metadata, set with
//
//	go build -ldflags "-X github.com/iov-one/escrowd/weave.Build=$(git rev-parse --short HEAD)"
var Build = "dev"

// Version returns the release together with the build it was made from.
func Version() string {
	if Build == "" {
		return release
	}
	return release + "+" + Build
}
