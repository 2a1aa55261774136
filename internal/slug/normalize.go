package slug

import (
	"strings"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// devanagari maps Hindi script runes to latin tokens. Virama and nasal
// marks fold into the surrounding consonants; the mapping is intentionally
// phonetic, not scholarly.
var devanagari = map[rune]string{
	'अ': "a", 'आ': "aa", 'इ': "i", 'ई': "ee", 'उ': "u", 'ऊ': "oo",
	'ऋ': "ri", 'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au",
	'क': "k", 'ख': "kh", 'ग': "g", 'घ': "gh", 'ङ': "n",
	'च': "ch", 'छ': "chh", 'ज': "j", 'झ': "jh", 'ञ': "n",
	'ट': "t", 'ठ': "th", 'ड': "d", 'ढ': "dh", 'ण': "n",
	'त': "t", 'थ': "th", 'द': "d", 'ध': "dh", 'न': "n",
	'प': "p", 'फ': "ph", 'ब': "b", 'भ': "bh", 'म': "m",
	'य': "y", 'र': "r", 'ल': "l", 'व': "v",
	'श': "sh", 'ष': "sh", 'स': "s", 'ह': "h",
	'ड़': "r", 'ढ़': "rh", 'क़': "q", 'ख़': "kh", 'ग़': "gh",
	'ज़': "z", 'फ़': "f",
	'ा': "aa", 'ि': "i", 'ी': "ee", 'ु': "u", 'ू': "oo",
	'ृ': "ri", 'े': "e", 'ै': "ai", 'ो': "o", 'ौ': "au",
	'ं': "n", 'ँ': "n", 'ः': "h", '्': "",
	'०': "0", '१': "1", '२': "2", '३': "3", '४': "4",
	'५': "5", '६': "6", '७': "7", '८': "8", '९': "9",
}

// urdu maps Urdu script runes to latin tokens. Short-vowel diacritics and
// hamza fold away.
var urdu = map[rune]string{
	'ا': "a", 'آ': "aa", 'ب': "b", 'پ': "p", 'ت': "t", 'ٹ': "t",
	'ث': "s", 'ج': "j", 'چ': "ch", 'ح': "h", 'خ': "kh",
	'د': "d", 'ڈ': "d", 'ذ': "z", 'ر': "r", 'ڑ': "r",
	'ز': "z", 'ژ': "zh", 'س': "s", 'ش': "sh",
	'ص': "s", 'ض': "z", 'ط': "t", 'ظ': "z",
	'ع': "a", 'غ': "gh", 'ف': "f", 'ق': "q",
	'ک': "k", 'گ': "g", 'ل': "l", 'م': "m",
	'ن': "n", 'ں': "n", 'و': "o", 'ہ': "h", 'ھ': "h",
	'ء': "", 'ی': "y", 'ے': "e", 'ئ': "y", 'ۂ': "h", 'ة': "h",
	'َ': "", 'ِ': "", 'ُ': "", 'ّ': "", 'ْ': "", 'ٰ': "a",
	'۰': "0", '۱': "1", '۲': "2", '۳': "3", '۴': "4",
	'۵': "5", '۶': "6", '۷': "7", '۸': "8", '۹': "9",
}

// latinFold collapses common accented latin runes so titles pasted with
// diacritics normalize the same as their plain form.
var latinFold = map[rune]string{
	'á': "a", 'à': "a", 'â': "a", 'ä': "a", 'ã': "a", 'ā': "a",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e", 'ē': "e",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i", 'ī': "i",
	'ó': "o", 'ò': "o", 'ô': "o", 'ö': "o", 'õ': "o", 'ō': "o",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u", 'ū': "u",
	'ñ': "n", 'ç': "c",
}

// Normalize turns source text into a lowercase hyphen-delimited base token
// using the language's transliteration rules. The same (text, lang) input
// always yields the same base token.
func Normalize(text string, lang domain.Language) string {
	var table map[rune]string
	switch lang {
	case domain.LangHindi:
		table = devanagari
	case domain.LangUrdu:
		table = urdu
	}

	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case table != nil && table[r] != "":
			b.WriteString(table[r])
		case lang == domain.LangEnglish && latinFold[r] != "":
			b.WriteString(latinFold[r])
		case table != nil:
			if _, mapped := table[r]; mapped {
				continue // explicit empty mapping, fold away silently
			}
			b.WriteByte(' ')
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	return strings.Join(fields, "-")
}
