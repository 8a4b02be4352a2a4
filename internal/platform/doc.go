package platform

// Package platform contains OS integration and external tooling glue: the
// distrobox registry reader, argv builders for its subcommands, terminal
// emulator resolution, distro detection from image references, and the
// per-user directories the app writes to.
