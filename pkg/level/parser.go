package level

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser reads level pack files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a new level parser.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("level: build parser: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a pack from a reader.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("level: parse error: %w", err)
	}
	return f, nil
}

// ParseString parses a pack held in memory.
func (p *Parser) ParseString(input string) (*File, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("level: parse error: %w", err)
	}
	return f, nil
}

// ParseFile parses the pack at filename.
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("level: open file: %w", err)
	}
	defer file.Close()

	f, err := p.parser.Parse(filename, file)
	if err != nil {
		return nil, fmt.Errorf("level: parse error: %w", err)
	}
	return f, nil
}

// Load parses r and converts every level block.
func Load(r io.Reader) ([]*Level, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// LoadFile parses the pack at path and converts every level block.
func LoadFile(path string) ([]*Level, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	f, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return f.Build()
}
