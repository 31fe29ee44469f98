// Package console provides an interactive move source that reads column
// choices from a terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"fourline/game"
)

// Player prompts a human for moves on the terminal. Input is the 1-based
// column number; illegal or unparseable input re-prompts.
type Player struct {
	rl *readline.Instance
}

func NewPlayer() (*Player, error) {
	rl, err := readline.New("")
	if err != nil {
		return nil, err
	}
	return &Player{rl: rl}, nil
}

func (p *Player) Close() error {
	return p.rl.Close()
}

func (p *Player) DecideMove(board *game.Board, token game.Token) int {
	p.rl.SetPrompt(fmt.Sprintf("%s >> ", token))

	for {
		fmt.Printf("\n%s\n", board)

		line, err := p.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Println("\nQuitting program")
				os.Exit(1)
			}
			fmt.Printf("\nError: %v\n", err)
			os.Exit(1)
		}

		line = strings.TrimSpace(line)
		if column, err := strconv.Atoi(line); err == nil && board.IsLegal(column-1) {
			return column - 1
		}
		fmt.Printf("\nIllegal move '%s', try again\n", line)
	}
}
