package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmtxgo/dmtx"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <image-file>",
	Short: "Decode every ECC 200 Data Matrix symbol found in an image",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

var (
	decSize    string
	decScanGap int
	decScale   int
	decTimeout time.Duration
	decFNC1    int
)

func init() {
	decodeCmd.Flags().StringVar(&decSize, "size", "any", "any|square-auto|rect-auto|RRxCC")
	decodeCmd.Flags().IntVar(&decScanGap, "scan-gap", 2, "pixel spacing between scan-grid seeds")
	decodeCmd.Flags().IntVar(&decScale, "scale", 1, "raster subsample divisor")
	decodeCmd.Flags().DurationVar(&decTimeout, "timeout", 0, "give up searching after this long (0 = unbounded)")
	decodeCmd.Flags().IntVar(&decFNC1, "fnc1", -1, "byte value FNC1 codewords expand into, -1 to disable")
}

func runDecode(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding image %s: %w", args[0], err)
	}

	size, err := parseSizeRequest(decSize)
	if err != nil {
		return err
	}

	opts := dmtx.DefaultDecodeOptions()
	opts.SizeRequest = size
	opts.ScanGap = decScanGap
	opts.Scale = decScale
	opts.Timeout = decTimeout
	if decFNC1 >= 0 {
		opts.FNC1 = decFNC1
	}

	messages, err := dmtx.Decode(src, &opts)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	if len(messages) == 0 {
		return fmt.Errorf("no Data Matrix symbol found")
	}
	for _, msg := range messages {
		fmt.Printf("%s\n", msg.Data)
	}
	return nil
}
