// psdchan packs and unpacks raw Photoshop channel dumps using the PSD
// row-framed PackBits codec.
package main

import "github.com/psdpack/psdpack/cmd/psdchan/cmd"

func main() {
	cmd.Execute()
}
