package lexer

type Options struct {
	// KeepComments makes the lexer emit token.Comment instead of skipping them.
	KeepComments bool
}
