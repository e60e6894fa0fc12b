// prepare normalizes an existing protocol.json and writes the compact
// prepared form next to it as prepared_<name>.txt. Useful for protocols
// produced by older runs or edited by hand.
//
//	prepare output/20260901_weekly_standup/protocol.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skillsenselab/protokoll/protocol"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: prepare <protocol.json>\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	var segments []protocol.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	normalized := protocol.Normalize(segments)

	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outputPath := filepath.Join(filepath.Dir(inputPath), "prepared_"+name+".txt")

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := protocol.WritePrepared(out, normalized); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	fmt.Printf("Prepared protocol saved to %s\n", outputPath)
	return nil
}
