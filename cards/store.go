package cards

import (
	"fmt"
	"sync"

	"github.com/Seednode/cartas/game"
)

// Store renders every image once, the first time one is asked for.
type Store struct {
	deck game.Deck

	once  sync.Once
	faces map[game.Card][]byte
	guide []byte
	icon  []byte
	err   error
}

func NewStore(deck game.Deck) *Store {
	return &Store{deck: deck}
}

func (s *Store) init() {
	s.faces = make(map[game.Card][]byte, s.deck.Len())

	for _, c := range s.deck.Order {
		data, err := PNG(Face(s.deck, c))
		if err != nil {
			s.err = fmt.Errorf("render card %s: %w", c, err)
			return
		}
		s.faces[c] = data
	}

	if s.guide, s.err = PNG(Guide(s.deck)); s.err != nil {
		s.err = fmt.Errorf("render guide: %w", s.err)
		return
	}

	if s.icon, s.err = PNG(Icon(s.deck)); s.err != nil {
		s.err = fmt.Errorf("render icon: %w", s.err)
	}
}

// Face returns the PNG for c, or ErrUnknownCard.
func (s *Store) Face(c game.Card) ([]byte, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}

	data, ok := s.faces[c]
	if !ok {
		return nil, ErrUnknownCard
	}

	return data, nil
}

func (s *Store) Guide() ([]byte, error) {
	s.once.Do(s.init)

	return s.guide, s.err
}

func (s *Store) Icon() ([]byte, error) {
	s.once.Do(s.init)

	return s.icon, s.err
}
