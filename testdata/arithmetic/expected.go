package main

import "fmt"

func main() {
	fmt.Println((int64(1) + mul(int64(2), int64(3))) - int64(4))
}

func mul(a, b int64) int64 {
	return a * b
}
