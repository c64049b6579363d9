package lexer

// Reporter: тонкий интерфейс, чтобы не тянуть диагностику сюда.
// Лексер **только вызывает** его с параметрами; форматирует внешний слой.
type Reporter interface {
	Report(code string, offset int, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	// NoShortTags disables "<?" as an opening tag (short_open_tag=Off).
	NoShortTags bool
}

func (lx *Lexer) report(code string, m Mark, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, int(m), msg)
	}
}
