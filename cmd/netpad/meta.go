package main

import (
	"fmt"
	"runtime/debug"
)

// Version is set at link time with -ldflags "-X main.Version=v1.2.3".
// Without it the module version and VCS revision are used.
var Version = ""

func init() {
	Version = resolveVersion(Version)
}

func resolveVersion(linked string) string {
	if linked != "" {
		return linked
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	v := info.Main.Version
	if v == "" || v == "(devel)" {
		v = "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			v += "+" + s.Value[:7]
		}
	}
	return v
}

func description() string {
	return fmt.Sprintf("Touch and network gamepad over USB HID (%s)\nhttps://github.com/Alia5/netpad", Version)
}
