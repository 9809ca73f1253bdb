package aide

// Version is overridden at build time with -ldflags "-X github.com/aretw0/aide.Version=...".
var Version = "dev"
