package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/homepage/pkg/todotxt"
)

// source is one named input: a file path or "-" for stdin.
type source struct {
	name string
	r    io.Reader
}

// eachLine calls fn for every line of the inputs named by args, or stdin
// when args is empty. Line numbers are 1-based per input.
func eachLine(cmd *cobra.Command, args []string, fn func(src string, num int, line string) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		src, closeFn, err := open(cmd, name)
		if err != nil {
			return err
		}
		err = scan(src, fn)
		closeFn()
		if err != nil {
			return err
		}
	}
	return nil
}

func open(cmd *cobra.Command, name string) (source, func(), error) {
	if name == "-" {
		return source{name: "<stdin>", r: cmd.InOrStdin()}, func() {}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return source{}, nil, err
	}
	return source{name: name, r: f}, func() { f.Close() }, nil
}

func scan(src source, fn func(src string, num int, line string) error) error {
	scanner := bufio.NewScanner(src.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for scanner.Scan() {
		num++
		if err := fn(src.name, num, strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", src.name, err)
	}
	return nil
}

func fmtCmd(log func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Print every task line in canonical form",
		Long: `Reads task lines from the given files (or stdin) and prints each one
re-serialized in canonical order. Blank lines are kept, lines that are not
task lines are passed through unchanged and reported on stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log()
			defer l.Sync()
			out := cmd.OutOrStdout()
			return eachLine(cmd, args, func(src string, num int, line string) error {
				formatted, err := formatLine(line)
				if err != nil {
					l.Warn("line kept as is", zap.String("source", src), zap.Int("line", num), zap.Error(err))
				}
				_, werr := fmt.Fprintln(out, formatted)
				return werr
			})
		},
	}
}

func formatLine(line string) (string, error) {
	if strings.TrimSpace(line) == "" {
		return line, nil
	}
	task, err := todotxt.Parse(line)
	if err != nil {
		return line, err
	}
	return todotxt.Format(task), nil
}

func hashCmd(log func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file...]",
		Short: "Print the fingerprint of every task line",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := log()
			defer l.Sync()
			out := cmd.OutOrStdout()
			return eachLine(cmd, args, func(src string, num int, line string) error {
				task, err := todotxt.Parse(line)
				if err != nil || task.Subject == "" {
					l.Debug("skipping line", zap.String("source", src), zap.Int("line", num))
					return nil
				}
				_, werr := fmt.Fprintf(out, "%s\t%s\n", task.Hash(), line)
				return werr
			})
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file...]",
		Short: "Report lines that are not valid task lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			bad := 0
			err := eachLine(cmd, args, func(src string, num int, line string) error {
				if _, err := todotxt.Parse(line); err != nil {
					bad++
					_, werr := fmt.Fprintf(out, "%s:%d: %v\n", src, num, err)
					return werr
				}
				return nil
			})
			if err != nil {
				return err
			}
			if bad > 0 {
				return fmt.Errorf("%d invalid line(s)", bad)
			}
			return nil
		},
	}
}
