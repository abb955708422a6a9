package main

import "fmt"

func main() {
	fmt.Println(add(int64(9223372036854775807), int64(1)) - mul(int64(3037000500), int64(3037000500)))
}

func add(a, b int64) int64 {
	return a + b
}

func mul(a, b int64) int64 {
	return a * b
}
