// Package numerals spells integers out in Vietnamese.
package numerals

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	zeroWord     = "không"
	negationWord = "âm"
	hundredWord  = "trăm"
	oddWord      = "lẻ"
	tenWord      = "mười"
	tensWord     = "mươi"
)

var ones = [10]string{"", "một", "hai", "ba", "bốn", "năm", "sáu", "bảy", "tám", "chín"}

// Scale words for each base-1000 group, least significant first. int64 needs
// at most seven groups.
var scales = [7]string{"", "nghìn", "triệu", "tỷ", "nghìn tỷ", "triệu tỷ", "tỷ tỷ"}

// Render spells n out in Vietnamese. It is total: every int64 has a spelling.
func Render(n int64) string {
	if n == 0 {
		return capitalize(zeroWord)
	}

	var words []string

	mag := uint64(n)
	if n < 0 {
		words = append(words, negationWord)
		mag = uint64(-(n + 1)) + 1
	}

	// Base-1000 groups, most significant first.
	var chunks []uint64
	for mag > 0 {
		chunks = append([]uint64{mag % 1000}, chunks...)
		mag /= 1000
	}

	emitted := false
	for i, chunk := range chunks {
		scale := scales[len(chunks)-1-i]

		if chunk == 0 {
			// A zero group between spoken groups still has to be read out,
			// otherwise the place value of everything after it shifts.
			if emitted && anyNonZero(chunks[i+1:]) {
				words = append(words, zeroWord, hundredWord)
				if scale != "" {
					words = append(words, scale)
				}
			}
			continue
		}

		words = append(words, chunkWords(int(chunk), !emitted)...)
		if scale != "" {
			words = append(words, scale)
		}
		emitted = true
	}

	return capitalize(strings.Join(words, " "))
}

// RenderFloat spells a float out after truncating toward zero. NaN, infinities
// and values outside the int64 range have no spelling and yield "".
func RenderFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return ""
	}
	return Render(int64(f))
}

// chunkWords spells a three-digit group. Non-leading groups always voice the
// hundreds place, even when it is zero.
func chunkWords(c int, leading bool) []string {
	h := c / 100
	t := c / 10 % 10
	o := c % 10

	var words []string

	spokeHundreds := false
	if h > 0 {
		words = append(words, ones[h], hundredWord)
		spokeHundreds = true
	} else if !leading {
		words = append(words, zeroWord, hundredWord)
		spokeHundreds = true
	}

	switch {
	case t == 0:
		if o > 0 && spokeHundreds {
			words = append(words, oddWord)
		}
	case t == 1:
		words = append(words, tenWord)
	default:
		words = append(words, ones[t], tensWord)
	}

	if o > 0 {
		words = append(words, onesWord(t, o))
	}

	return words
}

// onesWord picks the unit word, applying the irregular forms that depend on
// the tens digit: mốt and tư only after mươi, lăm after mười or mươi.
func onesWord(t, o int) string {
	switch {
	case t >= 2 && o == 1:
		return "mốt"
	case t >= 2 && o == 4:
		return "tư"
	case t >= 1 && o == 5:
		return "lăm"
	default:
		return ones[o]
	}
}

func anyNonZero(chunks []uint64) bool {
	for _, c := range chunks {
		if c != 0 {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
