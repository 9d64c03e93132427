package scenario

import (
	"errors"
	"fmt"
)

// Category is the closed set of challenge themes.
type Category string

const (
	CategoryPhishing Category = "phishing"
	CategoryDaily    Category = "daily"
	CategoryWork     Category = "work"
	CategoryFakeNews Category = "fake_news"
)

// ErrUnknownCategory is returned for a category outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// Categories lists every category in menu order.
var Categories = []Category{
	CategoryPhishing,
	CategoryDaily,
	CategoryWork,
	CategoryFakeNews,
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, err := c.instruction()
	return err == nil
}

// Title is the heading shown on the menu card and challenge header.
func (c Category) Title() string {
	switch c {
	case CategoryPhishing:
		return "Phishing Challenge"
	case CategoryDaily:
		return "Everyday Cyber Hygiene"
	case CategoryWork:
		return "Workplace Cyber Hygiene"
	case CategoryFakeNews:
		return "Spotting Fake News"
	}
	return string(c)
}

// Description is the one-line pitch under the menu card title.
func (c Category) Description() string {
	switch c {
	case CategoryPhishing:
		return "Endless, realistic AI-generated phishing scenarios. Every round is unique!"
	case CategoryDaily:
		return "Test your security instincts in everyday situations like social media and online shopping."
	case CategoryWork:
		return "Learn to protect company information and recognize threats in a corporate environment."
	case CategoryFakeNews:
		return "Sharpen your critical thinking and learn to identify disinformation and misleading headlines."
	}
	return ""
}

// instruction returns the category-specific generation request.
func (c Category) instruction() (string, error) {
	switch c {
	case CategoryPhishing:
		return "Generate a realistic phishing scenario (an email or an SMS). " +
			"It should be challenging but contain clear signs of fraud for the player to discover. " +
			"The goal is to teach the player to recognize phishing attacks.", nil
	case CategoryDaily:
		return "Generate a scenario about everyday cyber hygiene for non-technical users. " +
			"Examples include password security, public Wi-Fi, social media privacy, online shopping and similar.", nil
	case CategoryWork:
		return "Generate a scenario about cyber hygiene in the workplace. " +
			"Examples include handling confidential information, company security policies, " +
			"recognizing insider threats, locking your computer and similar.", nil
	case CategoryFakeNews:
		return "Generate a scenario about recognizing fake news or online disinformation. " +
			"It can be a news headline, a social media post or a short article. " +
			"The goal is to teach the player to critically evaluate sources and content.", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}
