package parser

import (
	"github.com/teranos/glslls/internal/ast"
	"github.com/teranos/glslls/internal/lexer"
)

// binInfo maps a binary-operator token to its ast.BinaryOp tag and
// its precedence level, low-to-high per the spec's table:
// ||=0, ^^=1, &&=2, |=3, ^=4, &=5, ==/!=(6), <>/<=/>=(7), <</>>(8),
// +/-(9), *//%(10).
type binInfo struct {
	op   ast.BinaryOp
	prec int
}

var binaryOps = map[lexer.Kind]binInfo{
	lexer.PipePipe:   {ast.BinLogOr, 0},
	lexer.CaretCaret:  {ast.BinLogXor, 1},
	lexer.AmpAmp:     {ast.BinLogAnd, 2},
	lexer.Pipe:       {ast.BinBitOr, 3},
	lexer.Caret:      {ast.BinBitXor, 4},
	lexer.Amp:        {ast.BinBitAnd, 5},
	lexer.EqEq:       {ast.BinEq, 6},
	lexer.NotEq:      {ast.BinNotEq, 6},
	lexer.LAngle:     {ast.BinLt, 7},
	lexer.RAngle:     {ast.BinGt, 7},
	lexer.LE:         {ast.BinLe, 7},
	lexer.GE:         {ast.BinGe, 7},
	lexer.LShift:     {ast.BinShl, 8},
	lexer.RShift:     {ast.BinShr, 8},
	lexer.Plus:       {ast.BinAdd, 9},
	lexer.Minus:      {ast.BinSub, 9},
	lexer.Star:       {ast.BinMul, 10},
	lexer.Slash:      {ast.BinDiv, 10},
	lexer.Percent:    {ast.BinMod, 10},
}

var assignOps = map[lexer.Kind]ast.AssignOp{
	lexer.Equal:     ast.AssignPlain,
	lexer.PlusEq:    ast.AssignAdd,
	lexer.MinusEq:   ast.AssignSub,
	lexer.StarEq:    ast.AssignMul,
	lexer.SlashEq:   ast.AssignDiv,
	lexer.PercentEq: ast.AssignMod,
	lexer.LShiftEq:  ast.AssignShl,
	lexer.RShiftEq:  ast.AssignShr,
	lexer.AmpEq:     ast.AssignAnd,
	lexer.CaretEq:   ast.AssignXor,
	lexer.PipeEq:    ast.AssignOr,
}

const maxBinaryPrec = 10
