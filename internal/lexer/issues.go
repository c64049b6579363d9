package lexer

// Issue codes reported by the lexer.
const (
	IssueUnterminatedString  = "LexUnterminatedString"
	IssueUnterminatedComment = "LexUnterminatedComment"
	IssueUnterminatedHeredoc = "LexUnterminatedHeredoc"
)

// Issue is a single lexical problem at a byte offset.
type Issue struct {
	Code   string
	Offset int
	Msg    string
}

// Collector is a Reporter that keeps every issue in order.
type Collector struct {
	Issues []Issue
}

// Report implements Reporter.
func (c *Collector) Report(code string, offset int, msg string) {
	c.Issues = append(c.Issues, Issue{Code: code, Offset: offset, Msg: msg})
}
