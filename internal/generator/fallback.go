package generator

import (
	"fmt"

	"github.com/moviemates/gamecore-backend/internal/entity"
)

// fallbackBank keeps the quiz alive when the generator is down. Categories
// not present here are served from the general set.
var fallbackBank = map[string][]entity.Question{
	"movies": {
		{Prompt: "Which 1972 crime film opens with the line 'I believe in America'?", Answer: "The Godfather"},
		{Prompt: "Which planet do the Fremen call home in Dune?", Answer: "Arrakis"},
		{Prompt: "Who directed Jurassic Park?", Answer: "Steven Spielberg"},
		{Prompt: "In The Matrix, which pill does Neo take?", Answer: "red"},
		{Prompt: "What is the name of the ship in Alien?", Answer: "Nostromo"},
	},
	"science": {
		{Prompt: "What is the chemical symbol for gold?", Answer: "Au"},
		{Prompt: "How many planets are in the solar system?", Answer: "8"},
		{Prompt: "What gas do plants absorb from the atmosphere?", Answer: "carbon dioxide"},
		{Prompt: "What particle carries a negative charge?", Answer: "electron"},
	},
	"general": {
		{Prompt: "What is the capital of France?", Answer: "Paris"},
		{Prompt: "How many minutes are in a full day?", Answer: "1440"},
		{Prompt: "Which ocean is the largest?", Answer: "Pacific"},
		{Prompt: "How many sides does a hexagon have?", Answer: "6"},
	},
}

func fallbackQuestion(category string, index int) *entity.Question {
	bank, ok := fallbackBank[category]
	if !ok {
		bank = fallbackBank["general"]
	}

	question := bank[index%len(bank)]
	question.ID = fmt.Sprintf("fallback:%s:%d", category, index)

	return &question
}
