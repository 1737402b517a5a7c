package level

import "github.com/alecthomas/participle/v2/lexer"

// File is a parsed level pack.
type File struct {
	Levels []*Decl `parser:"@@*"`
}

// Decl is one level block.
// Example: level 3 { board { [ ... ] ... } goal { [ gled_on ] } hand { corner_u } }
type Decl struct {
	Pos    lexer.Position
	Number int      `parser:"KwLevel @Int LBrace"`
	Board  []*Row   `parser:"KwBoard LBrace @@* RBrace"`
	Goal   []*Row   `parser:"( KwGoal LBrace @@* RBrace )?"`
	Hand   []string `parser:"( KwHand LBrace @( Ident | Dot )* RBrace )? RBrace"`
}

// Row is a bracketed list of cell names.
type Row struct {
	Pos   lexer.Position
	Cells []string `parser:"LBracket @( Ident | Dot )* RBracket"`
}
