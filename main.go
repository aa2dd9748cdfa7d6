package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/remygo/ast"
	"github.com/pontaoski/remygo/errors"
	"github.com/pontaoski/remygo/lexer"
	"github.com/pontaoski/remygo/manifest"
	"github.com/pontaoski/remygo/parser"
)

// debug carries the --verbose timing lines.
var debug = log.New(io.Discard, "remygo: ", 0)

// errReported is returned once diagnostics have already been printed.
var errReported = cli.Exit("", 1)

func readSource(path string) (string, error) {
	if path == "" {
		return "", cli.Exit("no file provided", 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func parseSource(path string) (ast.File, error) {
	src, err := readSource(path)
	if err != nil {
		return ast.File{}, err
	}

	start := time.Now()
	file, err := parser.Parse(path, src)
	debug.Printf("parsed %s in %s", path, time.Since(start))
	if err != nil {
		errors.NewReporter(os.Stderr).Report(src, err)
		return ast.File{}, errReported
	}
	return file, nil
}

// packageFor names the package a file belongs to: the one in the manifest
// next to it, or the file name without its extension.
func packageFor(path string) string {
	if m, _, err := manifest.Discover(filepath.Dir(path)); err == nil {
		return m.Package
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() {
	log.SetPrefix("remygo: ")
	log.SetFlags(0)

	app := &cli.App{
		Name:  "remygo",
		Usage: "remy language front end",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log timings",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				debug.SetOutput(os.Stderr)
			}
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok {
				if msg := exit.Error(); msg != "" {
					log.Print(msg)
				}
				os.Exit(exit.ExitCode())
			}
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "init a directory",
				ArgsUsage: "<package>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "toml",
						Usage: "write remy.toml instead of remy.yaml",
					},
				},
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no package name provided", 1)
					}

					path := "remy.yaml"
					if c.Bool("toml") {
						path = "remy.toml"
					}
					if err := manifest.Write(path, manifest.New(name)); err != nil {
						return err
					}
					debug.Printf("wrote %s", path)
					return nil
				},
			},
			{
				Name:      "lex",
				Usage:     "print the tokens of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					src, err := readSource(path)
					if err != nil {
						return err
					}

					tokens, err := lexer.Lex(path, src)
					if err != nil {
						errors.NewReporter(os.Stderr).Report(src, err)
						return errReported
					}
					for _, tok := range tokens {
						fmt.Printf("%s %q %s\n", tok.Kind, tok.Value, tok.Location)
					}
					return nil
				},
			},
			{
				Name:      "parse",
				Usage:     "parse a file and dump its syntax tree",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "source",
						Usage: "print the tree back as source",
					},
				},
				Action: func(c *cli.Context) error {
					file, err := parseSource(c.Args().First())
					if err != nil {
						return err
					}

					if c.Bool("source") {
						fmt.Print(ast.Format(file))
					} else {
						repr.Println(file, repr.Indent("  "))
					}
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "parse every source file of a project",
				ArgsUsage: "[dir]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "jobs",
						Usage: "files parsed at once",
						Value: runtime.NumCPU(),
					},
				},
				Action: func(c *cli.Context) error {
					dir := c.Args().First()
					if dir == "" {
						dir = "."
					}

					bad, total, err := checkProject(context.Background(), os.Stderr, dir, c.Int("jobs"))
					if err != nil {
						return err
					}
					if bad > 0 {
						return cli.Exit(fmt.Sprintf("%d of %d files failed to parse", bad, total), 1)
					}
					fmt.Printf("%d files ok\n", total)
					return nil
				},
			},
			{
				Name:      "signatures",
				Usage:     "print the top-level signatures of a file as JSON",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					file, err := parseSource(path)
					if err != nil {
						return err
					}
					return writeTypeInfo(os.Stdout, collectTypeInfo(packageFor(path), file))
				},
			},
		},
	}

	app.Run(os.Args)
}
