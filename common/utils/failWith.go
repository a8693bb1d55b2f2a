package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
)

type causer interface {
	Cause() error
}

// printChain renders every layer of a pkg/errors chain, outermost first.
func printChain(err error) string {
	var b strings.Builder
	depth := 0
	previous := ""

	for err != nil {
		// Wrap stacks a withStack over a withMessage; both print the same text.
		if msg := err.Error(); msg != previous {
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString("└ ")
			b.WriteString(msg)
			b.WriteString("\n")
			previous = msg
			depth++
		}

		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}

	return b.String()
}

func FailWith(err error) {
	if err == nil {
		return
	}

	command := strings.Join(os.Args, " ")
	msg := printChain(errors.Wrap(err, command))

	fmt.Println("")
	fmt.Println(chalk.Red.Color("❌  An error occurred."))
	fmt.Println("")

	fmt.Print(msg)

	fmt.Println("")

	os.Exit(1)
}

func WarnWith(err error) {
	if err == nil {
		return
	}

	fmt.Println("")
	fmt.Println(chalk.Yellow.Color("⚠️  Warning"))
	fmt.Println("")

	fmt.Print(printChain(err))

	fmt.Println("")
}
