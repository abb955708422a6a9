package main

import "fmt"

func main() {
	fmt.Println(func() bool {
		var even func(int64) bool
		var odd func(int64) bool
		even = func(n int64) bool {
			return func() bool {
				if n == int64(0) {
					return true
				}
				return odd(n - int64(1))
			}()
		}
		odd = func(n int64) bool {
			return func() bool {
				if n == int64(0) {
					return false
				}
				return even(n - int64(1))
			}()
		}
		_ = even
		_ = odd
		return even(int64(10))
	}())
}
