// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with Map and Filter.

Both always return a non-nil slice so that an empty result is encoded as
"[]" and never as "null".
*/
package slice

// Map applies transform to every element of input.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements of input for which keep is true, in order.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}
