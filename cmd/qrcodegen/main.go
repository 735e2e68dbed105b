// Command qrcodegen encodes text into QR Code symbols, either as a one-shot
// CLI operation or as a long-running HTTP service.
package main

func main() {
	Execute()
}
