package llm

import "fmt"

const reviewSystemMsg = `You are a video game critic. Write grounded, spoiler-light
reviews covering gameplay, presentation, and who the game is for. Plain prose,
no markdown headings, 3 to 5 paragraphs.`

// ReviewRequest builds a generation request for a detailed review of the
// named game.
func ReviewRequest(gameName string) Request {
	return Request{
		System:      reviewSystemMsg,
		Prompt:      fmt.Sprintf("Write a detailed review of the game %s.", gameName),
		Temperature: 0.7,
		MaxTokens:   defaultMaxTokens,
	}
}
