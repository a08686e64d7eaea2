//go:build unix

package discovery

import "golang.org/x/sys/unix"

type directoryIdentity struct {
	device uint64
	inode  uint64
}

// resolveDirectoryIdentity follows symbolic links and returns the device and inode of the target.
func resolveDirectoryIdentity(directoryPath string) (directoryIdentity, error) {
	var fileStatus unix.Stat_t
	if statError := unix.Stat(directoryPath, &fileStatus); statError != nil {
		return directoryIdentity{}, statError
	}
	return directoryIdentity{device: uint64(fileStatus.Dev), inode: uint64(fileStatus.Ino)}, nil
}
