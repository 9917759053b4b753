// Command tinyexpr evaluates arithmetic expressions given on the command
// line or read from a file, one per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	tinyexpr "github.com/embedformula/tinyexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		given        [][2]string
		echo         bool
		rightPow     bool
		natLog       bool
	)
	addgiven := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		given = append(given, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file of expressions, one per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting verb")
	flag.Func("given", "name=value variable definition (any number of times)", addgiven)
	flag.BoolVar(&rightPow, "right-pow", false, "make ^ right-associative")
	flag.BoolVar(&natLog, "nat-log", false, "make log() the natural logarithm instead of base 10")
	flag.BoolVar(&echo, "echo", false, "print each parsed expression before its result")
	flag.Parse()

	symbols := tinyexpr.SymbolTable{}
	for _, d := range given {
		name, val := d[0], d[1]
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Fatalf("setting %s: %v", name, err)
		}
		symbols[name] = tinyexpr.Scalar(&v)
	}

	var opts []tinyexpr.ParseOption
	if rightPow {
		opts = append(opts, tinyexpr.RightAssociativePow())
	}
	if natLog {
		opts = append(opts, tinyexpr.NaturalLog())
	}

	var lines []string
	if flag.NArg() > 0 {
		lines = flag.Args()
	} else {
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}

	verb += "\n"
	for _, src := range lines {
		tree, err := tinyexpr.Compile(src, symbols, opts...)
		if err != nil {
			pos := tinyexpr.Position(err)
			fmt.Fprintf(os.Stderr, "%s\n%s^\n%v\n", src, strings.Repeat(" ", pos-1), err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", tree)
		}
		fmt.Printf(verb, tree.Eval())
	}
}

func infile(inname string) (*os.File, error) {
	if inname == "" || inname == "-" {
		return os.Stdin, nil
	}
	return os.Open(inname)
}
