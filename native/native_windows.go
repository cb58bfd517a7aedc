package native

import "golang.org/x/sys/windows"

// The game keeps its shader cache in %LOCALAPPDATA%, next to ours.
func userCacheDir() (string, error) {
	return windows.KnownFolderPath(windows.FOLDERID_LocalAppData, windows.KF_FLAG_DEFAULT)
}
