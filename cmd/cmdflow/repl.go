package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/napalu/cmdflow"
	"golang.org/x/term"
)

const prompt = "cmdflow> "

// lineReader yields one input line per call and io.EOF once input is exhausted
type lineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (r *scannerReader) ReadLine() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func repl(ctx context.Context, engine *cmdflow.Engine, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader, w, restore, err := openInput(in, out)
	if err != nil {
		return err
	}
	defer restore()

	for {
		line, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		result, err := engine.Execute(ctx, line)
		fmt.Fprintln(w, describe(result, err))
	}
}

// openInput uses a line-editing terminal when in is an interactive terminal and a plain
// scanner otherwise
func openInput(in io.Reader, out io.Writer) (lineReader, io.Writer, func(), error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return nil, nil, nil, err
		}
		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{f, out}, prompt)
		return t, t, func() { _ = term.Restore(int(f.Fd()), state) }, nil
	}

	return &scannerReader{scanner: bufio.NewScanner(in)}, out, func() {}, nil
}
