package assert

import "fmt"

func NotNil(value any) {
	if value == nil {
		panic("expected value to be not nil")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

// OneOf panics when value is not one of the allowed values.
func OneOf[T comparable](value T, allowed ...T) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	panic(fmt.Sprintf("expected one of %v, got %v", allowed, value))
}
