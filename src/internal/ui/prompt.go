package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rtvm/rtvm/src/internal/constants"
)

// Confirm asks the user a yes/no question and returns their answer.
// defaultYes controls what an empty response means.
func Confirm(question string, defaultYes bool) bool {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}
	fmt.Printf("%s %s: ", question, suffix)

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return defaultYes
	}
	return response == constants.ResponseY || response == constants.ResponseYes
}
