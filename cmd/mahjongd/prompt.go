package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// promptNumPlayers asks for the table size the way configure_game()'s
// `input("请输入玩家人数 (2-4，默认4): ") or "4"` loop does: blank
// input takes the default, anything else must parse as 2-4 or the
// prompt repeats.
func promptNumPlayers(in *bufio.Scanner, out func(string)) int {
	for {
		out("Number of players (2-4, default 4): ")
		if !in.Scan() {
			return 4
		}
		text := strings.TrimSpace(in.Text())
		if text == "" {
			return 4
		}
		n, err := strconv.Atoi(text)
		if err != nil || n < 2 || n > 4 {
			out(fmt.Sprintf("invalid input %q, enter a number 2-4\n", text))
			continue
		}
		return n
	}
}

// promptIncludeHonors mirrors the y/n prompt for whether winds and
// dragons are dealt.
func promptIncludeHonors(in *bufio.Scanner, out func(string)) bool {
	for {
		out("Include winds and dragons? (y/n, default y): ")
		if !in.Scan() {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(in.Text()))
		switch text {
		case "":
			return true
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			out(fmt.Sprintf("invalid input %q, enter y or n\n", text))
		}
	}
}
