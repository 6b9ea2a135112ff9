package path

import (
	stdstrconv "strconv"

	"github.com/tdewolff/strconv"
)

// formatNumber renders f in the shortest valid form: trailing fractional
// zeros stripped, a redundant leading zero before '.' dropped, applied to a
// value computed in memory rather than copied from source.
func formatNumber(f float64, precision int) string {
	buf, ok := strconv.AppendFloat(make([]byte, 0, 24), f, precision)
	if !ok {
		buf = stdstrconv.AppendFloat(buf[:0], f, 'f', precision, 64)
	}
	return string(shortenNumberBytes(buf))
}

func shortenNumberBytes(num []byte) []byte {
	if len(num) == 0 {
		return num
	}
	neg := num[0] == '-'
	digits := num
	if neg {
		digits = num[1:]
	}
	for len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		digits = digits[1:]
	}
	for i, digit := range digits {
		if digit == '.' {
			j := len(digits) - 1
			for ; j > i; j-- {
				if digits[j] == '0' {
					digits = digits[:len(digits)-1]
				} else {
					break
				}
			}
			if j == i {
				digits = digits[:len(digits)-1]
			}
			break
		}
	}
	if string(digits) == "0" {
		return digits
	}
	if neg {
		return append([]byte{'-'}, digits...)
	}
	return digits
}
