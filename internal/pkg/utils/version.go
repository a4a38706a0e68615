package utils

import "runtime/debug"

// Version describes the build of the running binary.
type Version struct {
	Version   string
	GoVersion string
}

// GetVersion reads the VCS revision and Go version out of the embedded build
// info. Binaries built outside a git checkout report "devel".
func GetVersion() Version {
	v := Version{Version: "devel"}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}
	v.GoVersion = info.GoVersion

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			v.Version = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				v.Version += " (modified)"
			}
		}
	}

	return v
}
