package report

import (
	"strings"

	"code.cloudfoundry.org/bytefmt"
)

// Unit selects the divisor applied to summed byte sizes
type Unit string

const (
	Bytes Unit = "bytes"
	KB    Unit = "kb"
	MB    Unit = "mb"
	GB    Unit = "gb"
)

var divisors = map[Unit]uint64{
	Bytes: bytefmt.BYTE,
	KB:    bytefmt.KILOBYTE,
	MB:    bytefmt.MEGABYTE,
	GB:    bytefmt.GIGABYTE,
}

// Units lists the known units in ascending order of their divisor
func Units() []Unit {
	return []Unit{Bytes, KB, MB, GB}
}

func ParseUnit(unit string) Unit {
	return Unit(strings.ToLower(strings.TrimSpace(unit)))
}

func (u Unit) IsKnown() bool {
	_, ok := divisors[ParseUnit(string(u))]
	return ok
}

// Divisor returns the number of bytes per unit. Unknown units are treated as bytes.
func (u Unit) Divisor() uint64 {
	divisor, ok := divisors[ParseUnit(string(u))]
	if !ok {
		return bytefmt.BYTE
	}
	return divisor
}

func Convert(sizeInBytes int64, unit Unit) float64 {
	return float64(sizeInBytes) / float64(unit.Divisor())
}
