// SPDX-License-Identifier: MPL-2.0

package main

import "rez-tools/cmd/rt"

func main() {
	cmd.Execute()
}
