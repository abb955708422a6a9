package main

import "fmt"

func main() {
	fmt.Println(func(inc func(int64) int64) int64 {
		return inc(int64(41))
	}(func(x int64) int64 {
		return x + int64(1)
	}))
}
