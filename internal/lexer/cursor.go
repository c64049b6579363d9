package lexer

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в исходнике
type Cursor struct {
	Src []byte
	Off uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Src).
	Limit uint32
}

// NewCursor creates a new cursor over src.
func NewCursor(src []byte) Cursor {
	limit, err := safecast.Conv[uint32](len(src))
	if err != nil {
		panic(fmt.Errorf("len source overflow: %w", err))
	}
	return Cursor{
		Src:   src,
		Off:   0,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец исходника
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// PeekAt читает байт со смещением n от текущей позиции, иначе 0
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.Src[c.Off+n]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Advance сдвигает курсор на n байт, но не дальше Limit
func (c *Cursor) Advance(n int) {
	un, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("advance overflow: %w", err))
	}
	c.Off = min(c.Off+un, c.Limit)
}

// ToEnd переводит курсор в конец исходника
func (c *Cursor) ToEnd() {
	c.Off = c.Limit
}

// Mark это метка, что бы быстро получать текст читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// TextFrom returns the source text from m up to the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.Src[uint32(m):c.Off])
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Src[c.Off:c.Limit]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// HasPrefixFold is HasPrefix with ASCII case folding.
func (c *Cursor) HasPrefixFold(s string) bool {
	rest := c.Src[c.Off:c.Limit]
	if len(rest) < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lowerASCII(rest[i]) != lowerASCII(s[i]) {
			return false
		}
	}
	return true
}

// Rest returns the unread input.
func (c *Cursor) Rest() []byte {
	return c.Src[c.Off:c.Limit]
}
