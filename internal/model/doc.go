package model

// Package model defines domain data structures used across the app: box
// records read from the registry and the action variants a user can trigger
// on them. Records are plain values; a fresh slice is built on every refresh.
