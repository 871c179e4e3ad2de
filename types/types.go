package types

// LoaderState represents the mod loader's state in the selected game directory
type LoaderState int

const (
	// LoaderUnknown is the state before the game directory has been checked
	LoaderUnknown LoaderState = iota
	// LoaderMissing indicates dinput8.dll is not in the game directory
	LoaderMissing
	// LoaderInstalling indicates the loader is being downloaded or extracted
	LoaderInstalling
	// LoaderInstalled indicates the loader is present
	LoaderInstalled
	// LoaderFailed indicates the last install attempt failed
	LoaderFailed
)

// String returns the string representation of the LoaderState
func (s LoaderState) String() string {
	switch s {
	case LoaderUnknown:
		return "Unknown"
	case LoaderMissing:
		return "Not installed"
	case LoaderInstalling:
		return "Installing"
	case LoaderInstalled:
		return "Installed"
	case LoaderFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// CanInstall reports whether an install may be started from this state
func (s LoaderState) CanInstall() bool {
	return s == LoaderMissing || s == LoaderFailed
}
