package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/cycler/internal/model"
)

// loadDeck reads a YAML slides file. An empty path selects the built-in deck.
func loadDeck(path string) (model.Deck, error) {
	if path == "" {
		return model.Deck{Slides: model.DefaultSlides()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Deck{}, fmt.Errorf("reading slides file: %w", err)
	}

	var deck model.Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return model.Deck{}, fmt.Errorf("parsing slides file %s: %w", path, err)
	}
	if len(deck.Slides) == 0 {
		return model.Deck{}, errors.New("slides file has no slides")
	}

	for i := range deck.Slides {
		if strings.TrimSpace(deck.Slides[i].Title) == "" {
			deck.Slides[i].Title = fmt.Sprintf("Slide %d", i+1)
		}
	}
	return deck, nil
}
