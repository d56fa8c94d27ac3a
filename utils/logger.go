package utils

import (
	"fmt"
	"io"
)

// Logger writes verbose decoder traces. A nil *Logger discards everything.
type Logger struct {
	io.Writer
}

func (l *Logger) Println(a ...interface{}) {
	if l != nil {
		fmt.Fprintln(l, a...)
	}
}

func (l *Logger) Printf(format string, a ...interface{}) {
	if l != nil {
		fmt.Fprintf(l, format+"\n", a...)
	}
}

func (l *Logger) Dump(a ...interface{}) {
	if l != nil {
		io.WriteString(l, SDump(a...))
	}
}
