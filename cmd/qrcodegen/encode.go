package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qrcodegen/qrcodegen"
	"github.com/qrcodegen/qrcodegen/internal/config"
)

var (
	flagECL        string
	flagScale      int
	flagBorder     int
	flagMask       int
	flagMinVersion int
	flagMaxVersion int
	flagOut        string
	flagFormat     string
	flagOpen       bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode [text]",
	Short: "Encode text into a QR Code symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&flagECL, "ecl", "", "error correction level: low, medium, quartile, high (default: config)")
	encodeCmd.Flags().IntVar(&flagScale, "scale", 0, "pixels per module for PNG output (default: config)")
	encodeCmd.Flags().IntVar(&flagBorder, "border", -1, "quiet zone width in modules (default: config)")
	encodeCmd.Flags().IntVar(&flagMask, "mask", -1, "mask pattern 0-7, or -1 to choose automatically")
	encodeCmd.Flags().IntVar(&flagMinVersion, "min-version", 1, "minimum QR Code version")
	encodeCmd.Flags().IntVar(&flagMaxVersion, "max-version", 40, "maximum QR Code version")
	encodeCmd.Flags().StringVar(&flagOut, "out", "", "output file path (default: print to stdout)")
	encodeCmd.Flags().StringVar(&flagFormat, "format", "", "output format: txt, svg, png (default: txt on a terminal, svg to a file)")
	encodeCmd.Flags().BoolVar(&flagOpen, "open", false, "open the output file in the system's default browser")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ecl, err := parseECL(cfg.Encode.ErrorCorrectionLevel, flagECL)
	if err != nil {
		return err
	}

	mask := qrcodegen.AutoMask
	if flagMask >= 0 {
		mask = qrcodegen.Mask(flagMask)
	}

	qr, err := qrcodegen.EncodeText(args[0], ecl,
		qrcodegen.WithMask(mask),
		qrcodegen.WithMinVersion(qrcodegen.Version(flagMinVersion)),
		qrcodegen.WithMaxVersion(qrcodegen.Version(flagMaxVersion)))
	if err != nil {
		return fmt.Errorf("encoding text: %w", err)
	}

	scale := cfg.Encode.Scale
	if flagScale > 0 {
		scale = flagScale
	}
	border := cfg.Encode.Border
	if flagBorder >= 0 {
		border = flagBorder
	}

	format := flagFormat
	if format == "" {
		format = defaultFormat()
	}

	var out *os.File
	if flagOut == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(flagOut)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	switch format {
	case "txt":
		fmt.Fprint(out, qr.String())
	case "svg":
		svg, err := qr.ToSVG(border)
		if err != nil {
			return fmt.Errorf("rendering svg: %w", err)
		}
		fmt.Fprint(out, svg)
	case "png":
		if err := qr.ToPNG(out, scale, border); err != nil {
			return fmt.Errorf("rendering png: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}

	if flagOpen {
		if flagOut == "" {
			return fmt.Errorf("--open requires --out")
		}
		if err := browser.OpenFile(flagOut); err != nil {
			return fmt.Errorf("opening output in browser: %w", err)
		}
	}

	return nil
}

// defaultFormat picks txt when stdout is a terminal, since a bitmap or
// vector format is meant for a file or pipe instead.
func defaultFormat() string {
	if flagOut == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return "txt"
	}
	return "svg"
}

func parseECL(configured, flag string) (qrcodegen.ECL, error) {
	raw := flag
	if raw == "" {
		raw = configured
	}
	switch strings.ToLower(raw) {
	case "low", "l":
		return qrcodegen.Low, nil
	case "medium", "m":
		return qrcodegen.Medium, nil
	case "quartile", "q":
		return qrcodegen.Quartile, nil
	case "high", "h":
		return qrcodegen.High, nil
	default:
		return 0, fmt.Errorf("unsupported error correction level: %q", raw)
	}
}
