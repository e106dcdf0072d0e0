package edm

import (
	"encoding/base64"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeOfDayValue is the value of an Edm.TimeOfDay literal.
type TimeOfDayValue struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (t TimeOfDayValue) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", t.Nanosecond), "0")
	}
	return s
}

func (t TimeOfDayValue) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Duration of the day, usable for arithmetic.
func (t TimeOfDayValue) Duration() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second + time.Duration(t.Nanosecond)
}

func parseLiteral(k PrimitiveKind, lit string, f Facets) (any, error) {
	name := Namespace + "." + k.String()
	switch k {
	case Boolean:
		switch lit {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, literalError(name, lit, "expected true or false")
	case Byte:
		v, err := strconv.ParseUint(lit, 10, 8)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return uint8(v), nil
	case SByte:
		v, err := strconv.ParseInt(lit, 10, 8)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return int8(v), nil
	case Int16:
		v, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return int16(v), nil
	case Int32:
		v, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return int32(v), nil
	case Int64:
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return v, nil
	case Single:
		v, err := parseFloat(lit, 32)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return float32(v), nil
	case Double:
		v, err := parseFloat(lit, 64)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return v, nil
	case Decimal:
		return parseDecimal(name, lit, f)
	case String:
		if f.MaxLength != nil && utf8.RuneCountInString(lit) > *f.MaxLength {
			return nil, literalError(name, lit, fmt.Sprintf("longer than max length %d", *f.MaxLength))
		}
		if f.Unicode != nil && !*f.Unicode {
			for _, r := range lit {
				if r > 127 {
					return nil, literalError(name, lit, "non-ASCII character in a non-unicode string")
				}
			}
		}
		return lit, nil
	case Binary:
		b, err := decodeBase64(lit)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		if f.MaxLength != nil && len(b) > *f.MaxLength {
			return nil, literalError(name, lit, fmt.Sprintf("longer than max length %d", *f.MaxLength))
		}
		return b, nil
	case Date:
		t, err := time.Parse(time.DateOnly, lit)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return t, nil
	case DateTimeOffset:
		t, err := time.Parse(time.RFC3339Nano, lit)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		if err := checkFractionalSeconds(name, lit, f); err != nil {
			return nil, err
		}
		return t, nil
	case TimeOfDay:
		return parseTimeOfDay(name, lit, f)
	case Duration:
		d, err := parseDuration(lit)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		if err := checkFractionalSeconds(name, lit, f); err != nil {
			return nil, err
		}
		return d, nil
	case Guid:
		if len(lit) != 36 {
			return nil, literalError(name, lit, "expected 8-4-4-4-12 hex digits")
		}
		u, err := uuid.Parse(lit)
		if err != nil {
			return nil, wrapLiteral(name, lit, err)
		}
		return u, nil
	default:
		return nil, wrapLiteral(name, lit, ErrUnsupportedKind)
	}
}

func parseFloat(lit string, bits int) (float64, error) {
	switch lit {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(lit, bits)
}

func parseDecimal(name, lit string, f Facets) (any, error) {
	d, err := decimal.NewFromString(lit)
	if err != nil {
		return nil, wrapLiteral(name, lit, err)
	}
	digits := len(d.Coefficient().String())
	if d.Sign() < 0 {
		digits--
	}
	frac, intDigits := 0, digits
	if exp := int(d.Exponent()); exp < 0 {
		frac = -exp
		intDigits = max(digits-frac, 0)
	} else {
		intDigits += exp
	}
	if f.Scale != nil && frac > *f.Scale {
		return nil, literalError(name, lit, fmt.Sprintf("scale %d exceeded", *f.Scale))
	}
	if f.Precision != nil && intDigits+frac > *f.Precision {
		return nil, literalError(name, lit, fmt.Sprintf("precision %d exceeded", *f.Precision))
	}
	return d, nil
}

func decodeBase64(lit string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(lit, "=")); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(lit)
}

// checkFractionalSeconds applies the Precision facet to the digits after the
// seconds separator.
func checkFractionalSeconds(name, lit string, f Facets) error {
	if f.Precision == nil {
		return nil
	}
	frac := fractionalDigits(lit)
	if frac > *f.Precision {
		return literalError(name, lit, fmt.Sprintf("precision %d exceeded", *f.Precision))
	}
	return nil
}

func fractionalDigits(lit string) int {
	i := strings.IndexByte(lit, '.')
	if i < 0 {
		return 0
	}
	n := 0
	for _, r := range lit[i+1:] {
		if r < '0' || r > '9' {
			break
		}
		n++
	}
	return n
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])(?::([0-5][0-9])(?:\.([0-9]{1,12}))?)?$`)

func parseTimeOfDay(name, lit string, f Facets) (any, error) {
	m := timeOfDayPattern.FindStringSubmatch(lit)
	if m == nil {
		return nil, literalError(name, lit, "expected hh:mm[:ss[.fffffffff]]")
	}
	if err := checkFractionalSeconds(name, lit, f); err != nil {
		return nil, err
	}
	t := TimeOfDayValue{}
	t.Hour, _ = strconv.Atoi(m[1])
	t.Minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		t.Second, _ = strconv.Atoi(m[3])
	}
	if m[4] != "" {
		frac := m[4]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		t.Nanosecond, _ = strconv.Atoi(frac)
	}
	return t, nil
}

var durationPattern = regexp.MustCompile(`^(-)?P(?:([0-9]+)D)?(?:T(?:([0-9]+)H)?(?:([0-9]+)M)?(?:([0-9]+(?:\.[0-9]+)?)S)?)?$`)

// parseDuration reads an ISO 8601 day-time duration such as "P1DT2H3M4.5S".
func parseDuration(lit string) (time.Duration, error) {
	m := durationPattern.FindStringSubmatch(lit)
	if m == nil || strings.HasSuffix(lit, "P") || strings.HasSuffix(lit, "T") {
		return 0, fmt.Errorf("expected [-]PnDTnHnMn.nS")
	}
	var total float64
	units := []float64{24 * 3600, 3600, 60, 1}
	for i, u := range units {
		part := m[i+2]
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, err
		}
		total += v * u
	}
	if total*float64(time.Second) > math.MaxInt64 {
		return 0, fmt.Errorf("duration out of range")
	}
	d := time.Duration(math.Round(total * float64(time.Second)))
	if m[1] == "-" {
		d = -d
	}
	return d, nil
}
