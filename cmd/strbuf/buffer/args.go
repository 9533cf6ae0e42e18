// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"fmt"
	"strconv"
)

// convertArgs turns command-line strings into the values the verbs of
// format expect: integers for %d and friends, floats for %f, booleans
// for %t. %x and %X accept either an integer or a string, as fmt does.
// Arguments beyond the last verb are passed as strings.
func convertArgs(format string, args []string) ([]any, error) {
	values := make([]any, 0, len(args))
	next := 0

	take := func(kind byte) error {
		if next >= len(args) {
			return nil
		}
		value, err := convertArg(kind, args[next])
		if err != nil {
			return fmt.Errorf("argument %d (%q) for %%%c: %w", next+1, args[next], kind, err)
		}
		values = append(values, value)
		next++
		return nil
	}

	for index := 0; index < len(format); index++ {
		if format[index] != '%' {
			continue
		}
		index++
		for index < len(format) && (isFlagOrWidth(format[index]) || format[index] == '*') {
			if format[index] == '*' {
				if err := take('*'); err != nil {
					return nil, err
				}
			}
			index++
		}
		if index >= len(format) {
			break
		}

		switch verb := format[index]; verb {
		case '%':
		case '[':
			return nil, fmt.Errorf("explicit argument indexes are not supported")
		default:
			if err := take(verb); err != nil {
				return nil, err
			}
		}
	}

	for ; next < len(args); next++ {
		values = append(values, args[next])
	}
	return values, nil
}

func convertArg(kind byte, arg string) (any, error) {
	switch kind {
	case '*', 'd', 'b', 'o', 'O', 'c', 'U':
		value, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer")
		}
		if kind == '*' {
			return int(value), nil
		}
		return value, nil
	case 'x', 'X':
		if value, err := strconv.ParseInt(arg, 0, 64); err == nil {
			return value, nil
		}
		return arg, nil
	case 'e', 'E', 'f', 'F', 'g', 'G':
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number")
		}
		return value, nil
	case 't':
		value, err := strconv.ParseBool(arg)
		if err != nil {
			return nil, fmt.Errorf("not a boolean")
		}
		return value, nil
	default:
		return arg, nil
	}
}

// isFlagOrWidth matches the bytes that may sit between % and the verb.
func isFlagOrWidth(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '+', c == '-', c == '#', c == ' ', c == '.':
		return true
	}
	return false
}
