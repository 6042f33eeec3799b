package main

import (
	"github.com/rtvm/rtvm/src/cmd"

	// Import runtime profiles to register them
	_ "github.com/rtvm/rtvm/src/runtimes/golang"
	_ "github.com/rtvm/rtvm/src/runtimes/node"
	_ "github.com/rtvm/rtvm/src/runtimes/python"
	_ "github.com/rtvm/rtvm/src/runtimes/rust"

	// Import migration adapters to register them
	// Go migration adapters
	_ "github.com/rtvm/rtvm/src/migrations/go/gvm"

	// Node.js migration adapters
	_ "github.com/rtvm/rtvm/src/migrations/node/fnm"
	_ "github.com/rtvm/rtvm/src/migrations/node/n"
	_ "github.com/rtvm/rtvm/src/migrations/node/nvm"

	// Python migration adapters
	_ "github.com/rtvm/rtvm/src/migrations/python/pyenv"

	// Rust migration adapters
	_ "github.com/rtvm/rtvm/src/migrations/rust/rustup"
)

func main() {
	cmd.Execute()
}
