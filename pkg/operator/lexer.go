package operator

import (
	"bytes"
)

// Lex splits decoded content stream bytes into operator records. Operand
// tokens accumulate until an operator mnemonic is seen, which closes the
// record. Arrays and inline dictionaries are kept as single operand tokens so
// records round-trip through Encode. Inline image data between ID and EI is
// captured verbatim as one opaque operand.
func Lex(content []byte) []Record {
	lx := &lexer{reader: bytes.NewReader(content)}
	return lx.run()
}

type lexer struct {
	reader   *bytes.Reader
	records  []Record
	operands []string
}

func (lx *lexer) run() []Record {
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		if isWhitespace(b) {
			continue
		}

		switch b {
		case '(':
			lx.operands = append(lx.operands, "("+lx.readStringLiteral()+")")
		case '<':
			next, _ := lx.reader.ReadByte()
			if next == '<' {
				lx.operands = append(lx.operands, "<<"+lx.readDict())
			} else {
				lx.reader.UnreadByte()
				lx.operands = append(lx.operands, "<"+lx.readHexString()+">")
			}
		case '[':
			lx.operands = append(lx.operands, "["+lx.readArray())
		case '/':
			lx.operands = append(lx.operands, "/"+lx.readRegular())
		case '%':
			lx.skipComment()
		case '\'', '"':
			// The quote operators are valid mnemonics on their own.
			lx.emit(string(b))
		default:
			lx.reader.UnreadByte()
			token := lx.readRegular()
			if token == "" {
				continue
			}
			if isOperatorToken(token) {
				lx.emit(token)
				if token == "ID" {
					lx.readInlineImageData()
				}
			} else {
				lx.operands = append(lx.operands, token)
			}
		}
	}

	// Trailing operands with no operator pass through as their own record.
	if len(lx.operands) > 0 {
		lx.records = append(lx.records, Record{Operands: lx.operands})
		lx.operands = nil
	}
	return lx.records
}

func (lx *lexer) emit(op string) {
	lx.records = append(lx.records, Record{Operands: lx.operands, Operator: op})
	lx.operands = nil
}

// readStringLiteral reads a parenthesized string, honoring escapes and
// balanced nested parentheses.
func (lx *lexer) readStringLiteral() string {
	var result []byte
	depth := 1
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		if b == '\\' {
			next, _ := lx.reader.ReadByte()
			result = append(result, '\\', next)
			continue
		}
		if b == '(' {
			depth++
		} else if b == ')' {
			depth--
			if depth == 0 {
				break
			}
		}
		result = append(result, b)
	}
	return string(result)
}

// readHexString reads up to the closing '>' of a hex string.
func (lx *lexer) readHexString() string {
	var result []byte
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil || b == '>' {
			break
		}
		if !isWhitespace(b) {
			result = append(result, b)
		}
	}
	return string(result)
}

// readArray reads a balanced array body including the closing ']'.
func (lx *lexer) readArray() string {
	var result []byte
	depth := 1
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		if b == '[' {
			depth++
		} else if b == ']' {
			depth--
			if depth == 0 {
				result = append(result, b)
				break
			}
		}
		result = append(result, b)
	}
	return string(result)
}

// readDict reads a balanced dictionary body including the closing '>>'.
func (lx *lexer) readDict() string {
	var result []byte
	depth := 1
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		if b == '<' {
			if next, _ := lx.reader.ReadByte(); next == '<' {
				depth++
				result = append(result, '<', '<')
				continue
			} else {
				lx.reader.UnreadByte()
			}
		} else if b == '>' {
			if next, _ := lx.reader.ReadByte(); next == '>' {
				depth--
				result = append(result, '>', '>')
				if depth == 0 {
					return string(result)
				}
				continue
			} else {
				lx.reader.UnreadByte()
			}
		}
		result = append(result, b)
	}
	return string(result)
}

// readRegular reads a name, number or operator token up to the next
// delimiter or whitespace.
func (lx *lexer) readRegular() string {
	var result []byte
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		if isDelimiter(b) || isWhitespace(b) {
			lx.reader.UnreadByte()
			break
		}
		result = append(result, b)
	}
	return string(result)
}

// readInlineImageData consumes raw image bytes up to the EI operator and
// emits them as a single opaque record, so surgery can carry the data through
// untouched.
func (lx *lexer) readInlineImageData() {
	// Skip the single whitespace byte after ID.
	if b, err := lx.reader.ReadByte(); err == nil && !isWhitespace(b) {
		lx.reader.UnreadByte()
	}
	var data []byte
	for lx.reader.Len() > 0 {
		b, err := lx.reader.ReadByte()
		if err != nil {
			break
		}
		data = append(data, b)
		n := len(data)
		if n >= 3 && data[n-2] == 'E' && data[n-1] == 'I' && isWhitespace(data[n-3]) {
			data = data[:n-3]
			lx.records = append(lx.records, Record{Operands: []string{string(data)}, Operator: "EI"})
			return
		}
	}
	if len(data) > 0 {
		lx.records = append(lx.records, Record{Operands: []string{string(data)}})
	}
}

func (lx *lexer) skipComment() {
	for lx.reader.Len() > 0 {
		b, _ := lx.reader.ReadByte()
		if b == '\n' || b == '\r' {
			break
		}
	}
}

// isOperatorToken reports whether a bare token is an operator mnemonic rather
// than an operand. Numbers start with a digit, sign or period; booleans and
// null are operands; everything else alphabetic is an operator.
func isOperatorToken(token string) bool {
	if token == "" {
		return false
	}
	switch token {
	case "true", "false", "null":
		return false
	}
	b := token[0]
	if b >= '0' && b <= '9' || b == '+' || b == '-' || b == '.' {
		return false
	}
	return true
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == 0
}

func isDelimiter(b byte) bool {
	return b == '(' || b == ')' || b == '<' || b == '>' || b == '[' || b == ']' ||
		b == '{' || b == '}' || b == '/' || b == '%'
}
