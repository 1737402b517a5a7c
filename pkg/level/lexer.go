package level

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes level pack files. Piece and marker names are plain
// identifiers; "." is an empty cell.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	{Name: "KwLevel", Pattern: `\blevel\b`},
	{Name: "KwBoard", Pattern: `\bboard\b`},
	{Name: "KwGoal", Pattern: `\bgoal\b`},
	{Name: "KwHand", Pattern: `\bhand\b`},

	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Dot", Pattern: `\.`},

	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
})
