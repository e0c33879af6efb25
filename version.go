package canary

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/aretw0/canary.Version=...".
var Version = "0.3.0"
