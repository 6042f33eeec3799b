// Package constants defines common constants used across rtvm
package constants

// Operating systems
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// CPU architectures
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
	ArchARM   = "arm"
	Arch386   = "386"
)

// Shell types
const (
	ShellBash = "bash"
	ShellZsh  = "zsh"
	ShellFish = "fish"
)

// User responses
const (
	ResponseYes = "yes"
	ResponseY   = "y"
	ResponseNo  = "no"
	ResponseN   = "n"
)

// File extensions
const (
	ExtExe   = ".exe"
	ExtCmd   = ".cmd"
	ExtTarGz = ".tar.gz"
	ExtTarXz = ".tar.xz"
	ExtZip   = ".zip"
	Ext7z    = ".7z"
)
