package scheme

// C40/Text shift-value sentinels, distinct from any real triplet value
// (0-39) so they can share the same []int value list as data values.
const (
	Shift1 = 1000 + iota
	Shift2
	Shift3
)

// ProtocolValue maps a Shift1/Shift2/Shift3 sentinel back to the actual
// triplet value (0, 1, or 2 respectively) that belongs in the packed
// stream; any other value passes through unchanged. ValuesForByteCTX
// returns sentinels in place of these small values purely so callers can
// tell a shift-setting value apart from a same-numbered data value at a
// glance; PackTriplet and the decode replay both need the real value.
func ProtocolValue(v int) int {
	switch v {
	case Shift1:
		return 0
	case Shift2:
		return 1
	case Shift3:
		return 2
	default:
		return v
	}
}

// ValuesForByteCTX expands one input byte into 1-4 C40/Text triplet values
// (or a Shift1/Shift2/Shift3 control value followed by its argument),
// per PushCTXValues' C40/Text branch. fnc1, when >= 0, is the byte value
// that should be treated as an FNC1 marker instead of literal data.
func ValuesForByteCTX(b byte, text bool, fnc1 int) ([]int, bool) {
	var values []int
	v := int(b)

	if v > 127 && v != fnc1 {
		values = append(values, Shift2, 30)
		v -= 128
	}

	switch {
	case fnc1 >= 0 && v == fnc1:
		values = append(values, Shift2, 27)
	case v <= 31:
		values = append(values, Shift1, v)
	case v == 32:
		values = append(values, 3)
	case v <= 47:
		values = append(values, Shift2, v-33)
	case v <= 57:
		values = append(values, v-44)
	case v <= 64:
		values = append(values, Shift2, v-43)
	case v <= 90 && !text:
		values = append(values, v-51)
	case v <= 90 && text:
		values = append(values, Shift3, v-64)
	case v <= 95:
		values = append(values, Shift2, v-69)
	case v == 96 && text:
		values = append(values, Shift3, 0)
	case v <= 122 && text:
		values = append(values, v-83)
	case v <= 127:
		values = append(values, Shift3, v-96)
	default:
		return nil, false
	}
	return values, true
}

// ValuesForByteX12 expands one input byte into its single X12 triplet
// value, per PushCTXValues' X12 branch. X12 has no shift mechanism and
// cannot represent bytes outside its fixed character set.
func ValuesForByteX12(b byte) (int, bool) {
	switch {
	case b == 13:
		return 0, true
	case b == 42:
		return 1, true
	case b == 62:
		return 2, true
	case b == 32:
		return 3, true
	case b >= '0' && b <= '9':
		return int(b) - 44, true
	case b >= 'A' && b <= 'Z':
		return int(b) - 51, true
	default:
		return 0, false
	}
}

// PackTriplet folds 3 C40/Text/X12 values (each 0-39) into 2 codeword
// bytes, per AppendValuesCTX's pairValue formula.
func PackTriplet(v0, v1, v2 int) (cw0, cw1 byte) {
	pairValue := 1600*v0 + 40*v1 + v2 + 1
	return byte(pairValue / 256), byte(pairValue % 256)
}

// UnpackTriplet is the inverse of PackTriplet, matching the decode side's
// identical unpacking formula (dmtxdecodescheme.c's DecodeSchemeC40Text /
// DecodeSchemeX12 share this arithmetic).
func UnpackTriplet(cw0, cw1 byte) (v0, v1, v2 int) {
	pairValue := int(cw0)*256 + int(cw1) - 1
	v0 = pairValue / 1600
	v1 = (pairValue % 1600) / 40
	v2 = pairValue % 40
	return v0, v1, v2
}

// CTXState tracks the decode-side shift/upper-shift state that persists
// across the three values of a C40/Text triplet, per DecodeSchemeC40Text.
type CTXState struct {
	Shift      int // 0 = basic set, 1/2/3 = Shift1/Shift2/Shift3
	UpperShift bool
}

func (s *CTXState) applyUpper(c byte) byte {
	if s.UpperShift {
		s.UpperShift = false
		return c + 128
	}
	return c
}

// DecodeValue consumes one C40/Text triplet value (0-39) against the
// current shift state, returning the decoded byte (if any), whether a byte
// was produced, and whether the value was an FNC1 marker (value 27 while
// shifted into Shift2; the caller substitutes its own FNC1 byte). Mirrors
// DecodeSchemeC40Text's per-value switch on state->shift.
func (s *CTXState) DecodeValue(v int, text bool) (b byte, ok bool, isFNC1 bool) {
	shift := s.Shift
	s.Shift = 0

	switch shift {
	case 0: // basic set
		switch {
		case v <= 2:
			s.Shift = v + 1
			return 0, false, false
		case v == 3:
			return s.applyUpper(' '), true, false
		case v <= 13:
			return s.applyUpper(byte(v - 13 + '9')), true, false
		default:
			if text {
				return s.applyUpper(byte(v - 39 + 'z')), true, false
			}
			return s.applyUpper(byte(v - 39 + 'Z')), true, false
		}
	case 1: // Shift1: raw control codes
		return s.applyUpper(byte(v)), true, false
	case 2: // Shift2: punctuation + FNC1 + upper-shift latch
		switch {
		case v <= 14:
			return s.applyUpper(byte(v + 33)), true, false
		case v <= 21:
			return s.applyUpper(byte(v + 43)), true, false
		case v <= 26:
			return s.applyUpper(byte(v + 69)), true, false
		case v == 27:
			return 0, false, true
		case v == 30:
			s.UpperShift = true
			return 0, false, false
		default:
			return 0, false, false
		}
	case 3: // Shift3
		if !text {
			return s.applyUpper(byte(v + 96)), true, false
		}
		switch {
		case v == 0:
			return s.applyUpper(byte(v + 96)), true, false
		case v <= 26:
			return s.applyUpper(byte(v - 26 + 'Z')), true, false
		default:
			return s.applyUpper(byte(v - 31 + 127)), true, false
		}
	}
	return 0, false, false
}

// DecodeX12Value maps one X12 triplet value (0-39) back to its ASCII byte,
// per DecodeSchemeX12. X12 has no shift states.
func DecodeX12Value(v int) (byte, bool) {
	switch {
	case v == 0:
		return 13, true
	case v == 1:
		return 42, true
	case v == 2:
		return 62, true
	case v == 3:
		return 32, true
	case v <= 13:
		return byte(v + 44), true
	case v <= 39:
		return byte(v + 51), true
	default:
		return 0, false
	}
}
