// Command weilenum enumerates Weil polynomials for a given configuration
// and prints one per line, lowest-degree coefficient first.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/edgarcosta/weilpoly"
	"github.com/edgarcosta/weilpoly/internal/search"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	d := flag.Int("d", 1, "half-degree of the substituted polynomial")
	lead := flag.Int64("lead", 1, "required leading coefficient")
	sign := flag.Int64("sign", 1, "outer sign applied to the output polynomial, +1 or -1")
	q := flag.Int64("q", 1, "Weil weight")
	cofactor := flag.Int("cofactor", weilpoly.CofactorOne, "cofactor kind: 0=1, 1=x+sqrt(q), 2=x-sqrt(q), 3=x^2-q")
	modlistArg := flag.String("modlist", "", "comma-separated divisibility modulus per coefficient, length d+1 (default: all 1)")
	nodeLimit := flag.Int64("node-limit", -1, "cap on visited search nodes, -1 for unbounded")
	workers := flag.Int("workers", 1, "number of parallel workers; 1 runs single-threaded")
	verbosity := flag.Int("v", 0, "log verbosity: 0=warn, 1=info, 2=debug, 3=trace")
	flag.Parse()

	zerolog.SetGlobalLevel(verbosityLevel(*verbosity))

	modlist, err := parseModlist(*modlistArg, *d)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sc, err := weilpoly.NewStaticContext(*d, *lead, *sign, *q, *cofactor, modlist, *nodeLimit, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	count := 0
	if *workers <= 1 {
		out, status := weilpoly.Enumerate(sc)
		for sympol := range out {
			printPoly(sympol)
			count++
		}
		if *status == search.Done {
			log.Debug().Int("count", count).Msg("enumeration complete")
		}
		return
	}

	out, wait := weilpoly.EnumerateParallel(context.Background(), sc, *workers)
	for sympol := range out {
		printPoly(sympol)
		count++
	}
	if err := wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Debug().Int("count", count).Msg("parallel enumeration complete")
}

func verbosityLevel(v int) zerolog.Level {
	switch {
	case v >= 3:
		return zerolog.TraceLevel
	case v == 2:
		return zerolog.DebugLevel
	case v == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

func parseModlist(arg string, d int) ([]int64, error) {
	if arg == "" {
		modlist := make([]int64, d+1)
		for i := range modlist {
			modlist[i] = 1
		}
		return modlist, nil
	}

	fields := strings.Split(arg, ",")
	if len(fields) != d+1 {
		return nil, fmt.Errorf("modlist must have d+1=%d entries, got %d", d+1, len(fields))
	}
	modlist := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("modlist entry %d (%q): %w", i, f, err)
		}
		modlist[i] = v
	}
	return modlist, nil
}

func printPoly(sympol []*big.Int) {
	parts := make([]string, len(sympol))
	for i, c := range sympol {
		parts[i] = c.String()
	}
	fmt.Println(strings.Join(parts, " "))
}
