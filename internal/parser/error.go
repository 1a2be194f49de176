package parser

import (
	"fmt"

	"github.com/bahasapas-lang/bahasapasc/internal/token"
)

// parseError is the single fatal error kind the parser produces. The
// grammar has no error recovery: the first parseError returned from any
// production unwinds to Parse and becomes the sole syntax diagnostic.
type parseError struct {
	Pos token.Position
	Msg string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("Syntax Error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func errorf(pos token.Position, format string, args ...any) error {
	return &parseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
