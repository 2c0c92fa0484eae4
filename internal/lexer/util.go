package lexer

const utf8RuneSelf = 0x80

// prayerMarker is the 🙏 emoji (U+1F64F) in UTF-8.
const prayerMarker = "\U0001F64F"

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}
