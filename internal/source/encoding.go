package source

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding identifies the decoded text encoding of a script file.
type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32LE
	EncodingUTF32BE
	EncodingCP1252
	EncodingLatin1
)

// String returns a human-readable encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF8BOM:
		return "UTF-8 (BOM)"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	case EncodingUTF32LE:
		return "UTF-32LE"
	case EncodingUTF32BE:
		return "UTF-32BE"
	case EncodingCP1252:
		return "Windows-1252"
	case EncodingLatin1:
		return "Latin-1"
	default:
		return "unknown"
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectAndDecode implements the ordered detection procedure from spec.md §4.1:
//  1. BOM match (UTF-8, UTF-16LE/BE, UTF-32LE/BE)
//  2. Strict UTF-8 decode
//  3. UTF-16LE/BE heuristic (even byte count, majority ASCII on even/odd positions)
//  4. CP1252, then Latin-1 (lossless last resort)
//
// Returns the decoded text (BOM stripped) and the detected encoding, or
// ErrDecodeFailure if every attempt fails (only CP1252/Latin-1 can fail, and
// Latin-1 never does, so in practice this only happens for empty/pathological
// input guards upstream).
func DetectAndDecode(raw []byte) (string, Encoding, error) {
	// 1. BOM match. UTF-32LE's BOM is a strict prefix-superset check needed
	// before UTF-16LE since FF FE 00 00 also starts with FF FE.
	switch {
	case bytes.HasPrefix(raw, bomUTF32LE):
		return decodeUTF32(raw[len(bomUTF32LE):], true), EncodingUTF32LE, nil
	case bytes.HasPrefix(raw, bomUTF32BE):
		return decodeUTF32(raw[len(bomUTF32BE):], false), EncodingUTF32BE, nil
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), EncodingUTF8BOM, nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw[len(bomUTF16LE):], true), EncodingUTF16LE, nil
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw[len(bomUTF16BE):], false), EncodingUTF16BE, nil
	}

	// 2. Strict UTF-8.
	if utf8.Valid(raw) {
		return string(raw), EncodingUTF8, nil
	}

	// 3. UTF-16 heuristic: even length, majority-ASCII on one parity of bytes.
	if enc, ok := detectUTF16Heuristic(raw); ok {
		little := enc == EncodingUTF16LE
		return decodeUTF16(raw, little), enc, nil
	}

	// 4. CP1252, then Latin-1.
	if text, ok := decodeCP1252Strict(raw); ok {
		return text, EncodingCP1252, nil
	}
	return decodeLatin1(raw), EncodingLatin1, nil
}

// detectUTF16Heuristic guesses UTF-16 without a BOM: the byte count must be
// even, and one parity of bytes (even positions for BE, odd for LE) must be
// mostly zero while the other parity is mostly printable ASCII.
func detectUTF16Heuristic(raw []byte) (Encoding, bool) {
	if len(raw) < 4 || len(raw)%2 != 0 {
		return 0, false
	}

	var zerosEven, zerosOdd, asciiEven, asciiOdd int
	pairs := len(raw) / 2
	for i := 0; i < pairs; i++ {
		evenByte := raw[i*2]
		oddByte := raw[i*2+1]
		if evenByte == 0 {
			zerosEven++
		}
		if oddByte == 0 {
			zerosOdd++
		}
		if evenByte >= 0x20 && evenByte < 0x7F {
			asciiEven++
		}
		if oddByte >= 0x20 && oddByte < 0x7F {
			asciiOdd++
		}
	}

	const majority = 0.6
	threshold := float64(pairs) * majority

	// LE ASCII text: low byte printable, high byte zero.
	if float64(asciiEven) >= threshold && float64(zerosOdd) >= threshold {
		return EncodingUTF16LE, true
	}
	// BE ASCII text: high byte zero, low byte printable.
	if float64(asciiOdd) >= threshold && float64(zerosEven) >= threshold {
		return EncodingUTF16BE, true
	}
	return 0, false
}

func decodeUTF16(raw []byte, little bool) string {
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	units := make([]uint16, 0, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		if little {
			units = append(units, uint16(raw[i])|uint16(raw[i+1])<<8)
		} else {
			units = append(units, uint16(raw[i+1])|uint16(raw[i])<<8)
		}
	}
	return string(utf16.Decode(units))
}

func decodeUTF32(raw []byte, little bool) string {
	var b bytes.Buffer
	for i := 0; i+3 < len(raw); i += 4 {
		var r rune
		if little {
			r = rune(uint32(raw[i]) | uint32(raw[i+1])<<8 | uint32(raw[i+2])<<16 | uint32(raw[i+3])<<24)
		} else {
			r = rune(uint32(raw[i+3]) | uint32(raw[i+2])<<8 | uint32(raw[i+1])<<16 | uint32(raw[i])<<24)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decodeCP1252Strict decodes raw bytes as Windows-1252, rejecting input that
// lands on one of CP1252's undefined control-range code points (0x81, 0x8D,
// 0x8F, 0x90, 0x9D), since that almost always means the bytes are not really
// CP1252 and Latin-1 is the more honest fallback.
func decodeCP1252Strict(raw []byte) (string, bool) {
	var b bytes.Buffer
	for _, c := range raw {
		r, ok := cp1252Table[c]
		if !ok {
			return "", false
		}
		b.WriteRune(r)
	}
	return b.String(), true
}

func decodeLatin1(raw []byte) string {
	var b bytes.Buffer
	for _, c := range raw {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// cp1252Table maps the 0x80-0x9F control range to its Windows-1252 code
// points; bytes outside that range decode identically to Latin-1 and are
// filled in by init.
var cp1252Table = map[byte]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C, 0x94: 0x201D,
	0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014, 0x98: 0x02DC,
	0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A, 0x9C: 0x0153,
	0x9E: 0x017E, 0x9F: 0x0178,
}

func init() {
	for c := 0; c < 256; c++ {
		b := byte(c)
		if b < 0x80 || b >= 0xA0 {
			cp1252Table[b] = rune(b)
		}
	}
}
