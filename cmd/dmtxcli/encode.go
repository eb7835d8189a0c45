package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmtxgo/dmtx"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [input-file]",
	Short: "Encode a file (or stdin) into an ECC 200 Data Matrix PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEncode,
}

var (
	encOut    string
	encScheme string
	encSize   string
	encModule int
	encMargin int
	encFNC1   int
	encMosaic bool
)

func init() {
	encodeCmd.Flags().StringVar(&encOut, "out", "out.png", "output PNG path")
	encodeCmd.Flags().StringVar(&encScheme, "scheme", "auto", "ascii|c40|text|x12|edifact|base256|auto")
	encodeCmd.Flags().StringVar(&encSize, "size", "square-auto", "square-auto|rect-auto|RRxCC (e.g. 24x24)")
	encodeCmd.Flags().IntVar(&encModule, "module-size", 5, "pixels per module")
	encodeCmd.Flags().IntVar(&encMargin, "margin", 10, "quiet zone width in modules")
	encodeCmd.Flags().IntVar(&encFNC1, "fnc1", -1, "byte value treated as FNC1, -1 to disable")
	encodeCmd.Flags().BoolVar(&encMosaic, "mosaic", false, "render a tri-plane color Data Matrix Mosaic")
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}

	scheme, err := parseScheme(encScheme)
	if err != nil {
		return err
	}
	size, err := parseSizeRequest(encSize)
	if err != nil {
		return err
	}

	opts := dmtx.DefaultEncodeOptions()
	opts.Scheme = scheme
	opts.SizeRequest = size
	opts.ModuleSize = encModule
	opts.MarginSize = encMargin
	opts.Mosaic = encMosaic
	if encFNC1 >= 0 {
		opts.FNC1 = encFNC1
	}

	img, err := dmtx.Encode(data, &opts)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	f, err := os.Create(encOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", encOut, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("writing %s: %w", encOut, err)
	}
	fmt.Println(encOut)
	return nil
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return os.ReadFile("/dev/stdin")
}

func parseScheme(s string) (dmtx.Scheme, error) {
	switch s {
	case "auto", "auto-best":
		return dmtx.AutoBest, nil
	case "auto-fast":
		return dmtx.AutoFast, nil
	case "ascii":
		return dmtx.Ascii, nil
	case "c40":
		return dmtx.C40, nil
	case "text":
		return dmtx.Text, nil
	case "x12":
		return dmtx.X12, nil
	case "edifact":
		return dmtx.Edifact, nil
	case "base256":
		return dmtx.Base256, nil
	default:
		return 0, fmt.Errorf("unknown scheme %q", s)
	}
}
