package osutil

import "os"

const (
	PermissionDirectory os.FileMode = 0755
	PermissionFile      os.FileMode = 0644

	// Files holding client secrets are only readable by their owner.
	PermissionFileOwnerOnly os.FileMode = 0600
)
