package tree

import (
	"sort"
	"strings"
)

// Sorted partitions the children of node into directories and files, in render order. depth is the nesting depth
// of the children: 1 for the top level.
// Ties never fall back to input order: equal numeric prefixes are ordered case-insensitively by name, then by raw name.
func Sorted(node *Node, depth int) (dirs []*Node, files []*Node) {
	for _, child := range node.Children {
		if child.IsDir {
			dirs = append(dirs, child)
		} else {
			files = append(files, child)
		}
	}

	if depth == 1 {
		sort.Slice(dirs, func(i, j int) bool {
			return lessNumeric(dirs[i].Name, dirs[j].Name)
		})
	} else {
		sort.Slice(dirs, func(i, j int) bool {
			return lessFold(dirs[i].Name, dirs[j].Name)
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return lessFold(files[i].Name, files[j].Name)
	})

	return dirs, files
}

// lessFold compares case-insensitively; the raw names break ties so that the order is total
func lessFold(a string, b string) bool {
	lowerA, lowerB := strings.ToLower(a), strings.ToLower(b)

	if lowerA != lowerB {
		return lowerA < lowerB
	}

	return a < b
}

// lessNumeric orders by the number the names start with. Names without leading digits come last.
func lessNumeric(a string, b string) bool {
	numberA, hasNumberA := leadingNumber(a)
	numberB, hasNumberB := leadingNumber(b)

	if hasNumberA != hasNumberB {
		return hasNumberA
	}

	if hasNumberA {
		if c := compareDigits(numberA, numberB); c != 0 {
			return c < 0
		}
	}

	return lessFold(a, b)
}

// leadingNumber returns the leading decimal digits of name without leading zeros ("0" for all zeros)
func leadingNumber(name string) (string, bool) {
	end := 0

	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}

	if end == 0 {
		return "", false
	}

	digits := strings.TrimLeft(name[:end], "0")

	if digits == "" {
		digits = "0"
	}

	return digits, true
}

// compareDigits compares two numbers given as digit strings without leading zeros, so they never overflow
func compareDigits(a string, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}

	return strings.Compare(a, b)
}
