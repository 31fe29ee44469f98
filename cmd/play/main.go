// Command play runs a terminal game of connect four against the engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"fourline/bot"
	"fourline/console"
	"fourline/game"
)

func newBot(difficulty string) game.Player {
	if difficulty == "random" {
		return bot.NewEasyPlayer()
	}
	return bot.NewAIPlayer(bot.ParseDifficulty(difficulty))
}

func main() {
	difficulty := flag.String("difficulty", "medium",
		"bot strength: easy, medium, hard, master, unfair, or random")
	second := flag.Bool("second", false, "let the bot move first")
	watch := flag.Bool("watch", false, "pit two bots against each other")
	flag.Parse()

	var g *game.Game
	if *watch {
		g = game.NewGame(newBot(*difficulty), newBot(*difficulty))
	} else {
		human, err := console.NewPlayer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
			os.Exit(1)
		}
		defer human.Close()

		if *second {
			g = game.NewGame(newBot(*difficulty), human)
		} else {
			g = game.NewGame(human, newBot(*difficulty))
		}
	}

	board, winner := g.Play()

	fmt.Printf("\n%s\n\n", board)
	if winner == game.NoToken {
		fmt.Println("It's a draw!")
	} else {
		fmt.Printf("Player '%s' wins!\n", winner)
	}
}
