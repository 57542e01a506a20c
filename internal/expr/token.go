package expr

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	Int   // 123, 1_000
	Name  // x, total_2

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Caret      // ^
	Bang       // !
	LParen     // (
	RParen     // )
	Assign     // =
	PlusPlus   // ++
	MinusMinus // --
)

// String returns the source spelling of k.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "end of input"
	case Int:
		return "integer"
	case Name:
		return "identifier"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Caret:
		return "^"
	case Bang:
		return "!"
	case LParen:
		return "("
	case RParen:
		return ")"
	case Assign:
		return "="
	case PlusPlus:
		return "++"
	case MinusMinus:
		return "--"
	default:
		return "unknown"
	}
}

// Token is a lexical token with its byte offset in the normalized input.
type Token struct {
	Kind Kind
	Pos  int
	Text string
}
