// trackdump inspects .track files: it lists keyframes and can sample
// interpolated values over a row range.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/soundtoys/tracksync/internal/track"
	"github.com/soundtoys/tracksync/internal/trackfile"
)

func main() {
	dir := flag.String("dir", ".", "directory holding track files")
	base := flag.String("base", "sync", "track file base identifier")
	from := flag.Float64("from", 0, "first row to sample")
	to := flag.Float64("to", 0, "last row to sample; 0 lists keys only")
	step := flag.Float64("step", 1, "row step when sampling")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: trackdump [flags] <track name>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	for _, name := range flag.Args() {
		if err := dump(*dir, *base, name, *from, *to, *step); err != nil {
			fmt.Fprintf(os.Stderr, "trackdump: %v\n", err)
			os.Exit(1)
		}
	}
}

func dump(dir, base, name string, from, to, step float64) error {
	tr := track.New(name)
	if err := trackfile.Load(trackfile.Dir(dir), base, tr); err != nil {
		return err
	}

	fmt.Printf("%s: %d keys\n", name, tr.Len())
	for _, k := range tr.Keys() {
		fmt.Printf("  row %6d  value %12g  %s\n", k.Row, k.Value, k.Curve)
	}

	if to <= from || step <= 0 {
		return nil
	}
	fmt.Printf("%s: samples [%g..%g] step %g\n", name, from, to, step)
	for row := from; row <= to; row += step {
		v, elapsed := tr.Evaluate(row)
		fmt.Printf("  row %8.2f  value %12g  elapsed %8.2f\n", row, v, elapsed)
	}
	return nil
}
