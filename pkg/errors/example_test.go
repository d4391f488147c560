package errors_test

import (
	"fmt"

	"github.com/oakbrad/dungeonchurch-oracle/pkg/errors"
)

func ExampleNew() {
	err := errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", "ghost")

	fmt.Println(errors.Is(err, errors.ErrCodeNodeNotFound))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// true
	// no node with id "ghost"
}

func ExampleWrap() {
	cause := fmt.Errorf("open graph.json: no such file")
	err := errors.Wrap(errors.ErrCodeFileNotFound, cause, "failed to load dataset")

	fmt.Println(errors.GetCode(err))
	fmt.Println(errors.UserMessage(err))
	// Output:
	// FILE_NOT_FOUND
	// failed to load dataset
}
