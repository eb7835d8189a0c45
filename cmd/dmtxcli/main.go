// Command dmtxcli is a thin wrapper around package dmtx's Encode/Decode,
// reading and writing PNG files.
package main

func main() {
	Execute()
}
