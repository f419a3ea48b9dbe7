package utils

import (
	"math"
)

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SumInts returns the sum of the given values.
func SumInts(values ...int) int {
	s := 0
	for _, v := range values {
		s += v
	}
	return s
}

// CeilInt returns the smallest integer >= f.
func CeilInt(f float64) int {
	return int(math.Ceil(f))
}

// FloorInt returns the largest integer <= f.
func FloorInt(f float64) int {
	return int(math.Floor(f))
}

// RoundInt rounds f half away from zero.
func RoundInt(f float64) int {
	return int(math.Round(f))
}

// RoundPrec rounds f with n digits precision
func RoundPrec(f float64, n int) float64 {
	n10 := math.Pow10(n)
	return math.Round(f*n10) / n10
}
