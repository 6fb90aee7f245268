// Package regvalue converts the literal text of a set command into a typed
// registry value and back.
//
// Decoding walks a fixed, ordered table of (prefix, parser) pairs; the first
// matching prefix decides the type. Text matching no prefix is a string value
// kept verbatim.
package regvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/winregi/pkg/errors"
)

// Kind names the registry data type of a TypedValue.
type Kind string

const (
	KindString Kind = "REG_SZ"
	KindDWord  Kind = "REG_DWORD"
	KindQWord  Kind = "REG_QWORD"
	KindBinary Kind = "REG_BINARY"
)

// TypedValue is one of StringValue, Int32Value, Int64Value or BinaryValue.
type TypedValue interface {
	Kind() Kind
	typedValue()
}

// StringValue holds REG_SZ data.
type StringValue string

// Int32Value holds REG_DWORD data.
type Int32Value uint32

// Int64Value holds REG_QWORD data.
type Int64Value uint64

// BinaryValue holds REG_BINARY data.
type BinaryValue []byte

func (StringValue) Kind() Kind { return KindString }
func (Int32Value) Kind() Kind  { return KindDWord }
func (Int64Value) Kind() Kind  { return KindQWord }
func (BinaryValue) Kind() Kind { return KindBinary }

func (StringValue) typedValue() {}
func (Int32Value) typedValue()  {}
func (Int64Value) typedValue()  {}
func (BinaryValue) typedValue() {}

// Literal prefixes, in decoding priority order.
const (
	PrefixDWord  = "dword:"
	PrefixQWord  = "qword:"
	PrefixBinary = "hex:"
)

type decoder struct {
	prefix string
	parse  func(body string) (TypedValue, error)
}

var decoders = []decoder{
	{PrefixDWord, parseDWord},
	{PrefixQWord, parseQWord},
	{PrefixBinary, parseBinary},
}

// Decode converts literal to a TypedValue. A known prefix followed by an
// invalid body fails with ErrMalformedLiteral; it never falls through to a
// string.
func Decode(literal string) (TypedValue, error) {
	for _, d := range decoders {
		if body, ok := strings.CutPrefix(literal, d.prefix); ok {
			v, err := d.parse(body)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrMalformedLiteral,
					"invalid %s literal %q", strings.TrimSuffix(d.prefix, ":"), literal).
					WithDetail("literal", literal)
			}
			return v, nil
		}
	}
	return StringValue(literal), nil
}

// Encode renders v in the literal syntax accepted by Decode. Hex digits are
// lower case and zero padded.
func Encode(v TypedValue) string {
	switch tv := v.(type) {
	case Int32Value:
		return fmt.Sprintf("%s%08x", PrefixDWord, uint32(tv))
	case Int64Value:
		return fmt.Sprintf("%s%016x", PrefixQWord, uint64(tv))
	case BinaryValue:
		parts := make([]string, len(tv))
		for i, b := range tv {
			parts[i] = fmt.Sprintf("%02x", b)
		}
		return PrefixBinary + strings.Join(parts, ",")
	case StringValue:
		return string(tv)
	default:
		return ""
	}
}

func parseDWord(body string) (TypedValue, error) {
	n, err := parseHex(body, 32)
	if err != nil {
		return nil, err
	}
	return Int32Value(n), nil
}

func parseQWord(body string) (TypedValue, error) {
	n, err := parseHex(body, 64)
	if err != nil {
		return nil, err
	}
	return Int64Value(n), nil
}

func parseBinary(body string) (TypedValue, error) {
	elements := strings.Split(body, ",")
	data := make([]byte, 0, len(elements))
	for i, element := range elements {
		b, err := parseHex(element, 8)
		if err != nil {
			return nil, fmt.Errorf("byte %d: %w", i, err)
		}
		data = append(data, byte(b))
	}
	return BinaryValue(data), nil
}

func parseHex(text string, bits int) (uint64, error) {
	digits := strings.TrimSpace(text)
	if lower := strings.ToLower(digits); strings.HasPrefix(lower, "0x") {
		digits = digits[2:]
	}
	if digits == "" {
		return 0, fmt.Errorf("no hex digits")
	}
	return strconv.ParseUint(digits, 16, bits)
}
