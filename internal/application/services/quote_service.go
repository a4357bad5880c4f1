package services

import (
	"math/rand"
)

// morning inspiration lines sent with the first digest of the day
var quotes = []string{
	"✨ Morning is a chance to start over.",
	"🚀 You are capable of more than you think.",
	"🔥 Today is the best day to become better.",
	"💡 Everything you need is already within you.",
}

// QuoteService picks the morning inspiration line.
type QuoteService struct {
	quotes []string
}

// NewQuoteService creates a quote service with the built-in quote list.
func NewQuoteService() *QuoteService {
	return &QuoteService{quotes: quotes}
}

// Random returns one quote wrapped in the morning greeting.
func (s *QuoteService) Random() string {
	quote := s.quotes[rand.Intn(len(s.quotes))]
	return "Good morning! ☀️\n\n" + quote
}
