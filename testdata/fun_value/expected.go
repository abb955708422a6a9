package main

import "fmt"

func main() {
	_ = func(type_ int64) int64 {
		return div(type_, int64(2))
	}
	fmt.Println("<fun: int -> int>")
}

func div(a, b int64) int64 {
	return a / b
}
