package util

import "golang.org/x/exp/constraints"

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Gcd[A constraints.Integer](a A, b A) A {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func Lcm[A constraints.Integer](a A, b A) A {
	return a / Gcd(a, b) * b
}
