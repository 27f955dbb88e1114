package opfskit

// Numeric mode and open-flag constants, exposed for interface
// compatibility with POSIX-shaped callers. No operation in this layer
// consults them: access control and open modes are owned by the backend.
const (
	F_OK = 0
	R_OK = 4
	W_OK = 2
	X_OK = 1

	O_RDONLY = 0
	O_WRONLY = 1
	O_RDWR   = 2
	O_CREAT  = 64
	O_EXCL   = 128
	O_TRUNC  = 512
	O_APPEND = 1024
)
