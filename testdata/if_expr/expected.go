package main

import "fmt"

func main() {
	fmt.Println(func() int64 {
		if int64(1) < int64(2) {
			return int64(10)
		}
		return int64(20)
	}())
}
