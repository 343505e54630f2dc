// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/exein-io/cross-llvm/cmd/crossllvm"

func main() {
	cmd.Execute()
}
