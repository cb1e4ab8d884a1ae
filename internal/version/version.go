package version

// Version is overridden at build time with -ldflags "-X catalog/internal/version.Version=...".
var Version = "dev"
