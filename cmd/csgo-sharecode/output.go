package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-colorable"
)

type color string

const (
	colorReset color = "\x1b[0m"
	colorRed   color = "\x1b[31m"
)

var (
	out    io.Writer = colorable.NewColorableStdout()
	errOut io.Writer = colorable.NewColorableStderr()
)

func printResult(format string, a ...any) {
	fmt.Fprintf(out, format+"\n", a...)
}

func printError(format string, a ...any) {
	fmt.Fprintf(errOut, "%sERROR: %s%s\n", colorRed, fmt.Sprintf(format, a...), colorReset)
}
